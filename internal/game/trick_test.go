package game

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

// vira 4-Ouros makes the 5s trumps; none of the hands below hold a 5.
var viraFives = card(Rank4, SuitOuros)

func TestPlayCardAlternatesTurn(t *testing.T) {
	m := seatedMatch(t, DefaultRules(), 1)
	rig(m, viraFives, 0, [Seats][]Card{
		{mustCard(t, "K-Ouros"), mustCard(t, "3-Copas"), mustCard(t, "6-Paus")},
		{mustCard(t, "Q-Ouros"), mustCard(t, "2-Espadas"), mustCard(t, "7-Copas")},
	})

	mustPlay(t, m, 0, mustCard(t, "K-Ouros"))
	if m.hand.Turn != 1 {
		t.Fatalf("turn after first play: got %d want 1", m.hand.Turn)
	}
	if len(m.players[0].Hand) != 2 || len(m.hand.Table) != 1 {
		t.Fatalf("hand %d cards, table %d cards", len(m.players[0].Hand), len(m.hand.Table))
	}

	mustPlay(t, m, 1, mustCard(t, "Q-Ouros"))
	if len(m.hand.Results) != 1 || m.hand.Results[0].Winner != 0 {
		t.Fatalf("trick 1 result: %+v", m.hand.Results)
	}
	if len(m.hand.Results[0].Plays) != 2 {
		t.Fatalf("trick 1 plays not recorded")
	}
	if m.hand.Turn != 0 || m.hand.Trick != 2 || m.phase != PhaseTrick2 {
		t.Fatalf("after trick 1: turn %d trick %d phase %s", m.hand.Turn, m.hand.Trick, m.phase)
	}
	if len(m.hand.Table) != 0 {
		t.Fatalf("table not cleared")
	}
}

func TestTrickWinnerLeadsNext(t *testing.T) {
	m := seatedMatch(t, DefaultRules(), 1)
	rig(m, viraFives, 0, [Seats][]Card{
		{mustCard(t, "6-Paus"), mustCard(t, "3-Copas"), mustCard(t, "K-Ouros")},
		{mustCard(t, "7-Copas"), mustCard(t, "2-Espadas"), mustCard(t, "Q-Ouros")},
	})
	mustPlay(t, m, 0, mustCard(t, "6-Paus"))
	mustPlay(t, m, 1, mustCard(t, "7-Copas"))
	if m.hand.Results[0].Winner != 1 || m.hand.Turn != 1 || m.hand.Leader != 1 {
		t.Fatalf("seat 1 should win and lead: %+v turn %d", m.hand.Results[0], m.hand.Turn)
	}
}

func TestTiedTrickKeepsLeader(t *testing.T) {
	m := seatedMatch(t, DefaultRules(), 1)
	rig(m, viraFives, 1, [Seats][]Card{
		{mustCard(t, "3-Ouros"), mustCard(t, "K-Copas"), mustCard(t, "4-Espadas")},
		{mustCard(t, "3-Copas"), mustCard(t, "Q-Copas"), mustCard(t, "6-Espadas")},
	})
	mustPlay(t, m, 1, mustCard(t, "3-Copas"))
	mustPlay(t, m, 0, mustCard(t, "3-Ouros"))
	if !m.hand.Results[0].Tie() {
		t.Fatalf("expected tie, got %+v", m.hand.Results[0])
	}
	if m.hand.Turn != 1 {
		t.Fatalf("leader of the tied trick should lead again, turn = %d", m.hand.Turn)
	}
}

func TestRejectedPlayLeavesStateUnchanged(t *testing.T) {
	m := seatedMatch(t, DefaultRules(), 3)
	rig(m, viraFives, 0, [Seats][]Card{
		{mustCard(t, "K-Ouros"), mustCard(t, "3-Copas"), mustCard(t, "6-Paus")},
		{mustCard(t, "Q-Ouros"), mustCard(t, "2-Espadas"), mustCard(t, "7-Copas")},
	})

	cases := []struct {
		name string
		seat int
		card Card
		want error
	}{
		{"out of turn", 1, mustCard(t, "Q-Ouros"), ErrNotYourTurn},
		{"opponent card", 0, mustCard(t, "Q-Ouros"), ErrCardNotInHand},
		{"card nobody holds", 0, mustCard(t, "A-Paus"), ErrCardNotInHand},
		{"hidden placeholder", 0, HiddenCard, ErrCardNotInHand},
		{"unknown seat", 5, mustCard(t, "K-Ouros"), ErrUnknownSeat},
	}
	check := func() {
		for _, tc := range cases {
			before := takeSnapshot(m)
			views := [Seats]View{m.View(0), m.View(1)}
			err := m.PlayCard(tc.seat, tc.card)
			if !errors.Is(err, tc.want) {
				t.Fatalf("%s: got %v want %v", tc.name, err, tc.want)
			}
			if !reflect.DeepEqual(before, takeSnapshot(m)) {
				t.Fatalf("%s: state changed", tc.name)
			}
			if !reflect.DeepEqual(views, [Seats]View{m.View(0), m.View(1)}) {
				t.Fatalf("%s: views changed", tc.name)
			}
		}
	}
	check()

	// mid-trick: seat 0 has played, so it is now out of turn as well
	mustPlay(t, m, 0, mustCard(t, "K-Ouros"))
	cases[0].name, cases[0].seat, cases[0].card = "played twice", 0, mustCard(t, "3-Copas")
	cases[1].seat, cases[2].seat, cases[3].seat = 1, 1, 1
	cases[1].card = mustCard(t, "K-Ouros")
	check()
}

func TestPlayCardWithoutHand(t *testing.T) {
	m := NewMatch(DefaultRules(), rand.New(rand.NewSource(1)))
	if _, err := m.Join("p0", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := m.PlayCard(0, card(Rank3, SuitPaus)); !errors.Is(err, ErrNoActiveHand) {
		t.Fatalf("expected ErrNoActiveHand, got %v", err)
	}
}
