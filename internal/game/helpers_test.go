package game

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"testing"
)

func card(r Rank, s Suit) Card { return Card{Rank: r, Suit: s} }

// mustCard parses "Q-Paus" style text.
func mustCard(t testing.TB, text string) Card {
	t.Helper()
	c, err := parseCardText(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return c
}

func parseCardText(text string) (Card, error) {
	rank, suit, ok := strings.Cut(strings.TrimSpace(text), "-")
	if !ok {
		return Card{}, fmt.Errorf("card %q: want rank-suit", text)
	}
	return ParseCard(rank, suit)
}

func parseCardList(text string) ([]Card, error) {
	var out []Card
	for _, part := range strings.Split(text, ",") {
		c, err := parseCardText(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// seatedMatch returns a match with both seats taken and the first hand dealt.
func seatedMatch(t testing.TB, rules Rules, seed int64) *Match {
	t.Helper()
	m := NewMatch(rules, rand.New(rand.NewSource(seed)))
	if _, err := m.Join("p0", ""); err != nil {
		t.Fatalf("join p0: %v", err)
	}
	if _, err := m.Join("p1", ""); err != nil {
		t.Fatalf("join p1: %v", err)
	}
	return m
}

// rig replaces the dealt hand with known cards.
func rig(m *Match, vira Card, leader int, hands [Seats][]Card) {
	for i, p := range m.players {
		p.Hand = slices.Clone(hands[i])
	}
	m.hand = Hand{
		Number:      m.hand.Number,
		Vira:        vira,
		Manilhas:    ManilhasFor(vira),
		Trick:       1,
		Value:       m.rules.HandValue,
		Leader:      leader,
		FirstLeader: leader,
		Turn:        leader,
		Winner:      NoWinner,
	}
	m.phase = PhaseTrick1
}

func mustPlay(t testing.TB, m *Match, seat int, c Card) {
	t.Helper()
	if err := m.PlayCard(seat, c); err != nil {
		t.Fatalf("seat %d play %s: %v", seat, c, err)
	}
}

type snapshot struct {
	phase  Phase
	scores [Teams]int
	dealer int
	winner int
	hand   Hand
	hands  [Seats][]Card
}

func takeSnapshot(m *Match) snapshot {
	s := snapshot{phase: m.phase, scores: m.scores, dealer: m.dealer, winner: m.winner, hand: m.hand}
	s.hand.Table = slices.Clone(m.hand.Table)
	s.hand.Results = nil
	for _, r := range m.hand.Results {
		s.hand.Results = append(s.hand.Results, TrickResult{Winner: r.Winner, Plays: slices.Clone(r.Plays)})
	}
	for i, p := range m.players {
		if p != nil {
			s.hands[i] = slices.Clone(p.Hand)
		}
	}
	return s
}
