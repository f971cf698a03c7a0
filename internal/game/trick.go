package game

import (
	"fmt"
	"slices"
)

// PlayCard plays one card for seat. A rejected play leaves the match as it was.
func (m *Match) PlayCard(seat int, c Card) error {
	if !m.phase.InTrick() {
		return ErrNoActiveHand
	}
	if !m.occupied(seat) {
		return ErrUnknownSeat
	}
	if seat != m.hand.Turn {
		return ErrNotYourTurn
	}
	p := m.players[seat]
	idx := slices.Index(p.Hand, c)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrCardNotInHand, c)
	}

	p.Hand = slices.Delete(slices.Clone(p.Hand), idx, idx+1)
	m.hand.Table = append(m.hand.Table, Play{Seat: seat, Card: c})
	m.hand.Turn = (m.hand.Turn + 1) % Seats

	if len(m.hand.Table) < Seats {
		return nil
	}
	return m.resolveTrick()
}

func (m *Match) resolveTrick() error {
	first, second := m.hand.Table[0], m.hand.Table[1]
	res := TrickResult{Winner: NoWinner, Plays: m.hand.Table}
	switch cmp := Compare(first.Card, second.Card, m.hand.Manilhas); {
	case cmp > 0:
		res.Winner = first.Seat
	case cmp < 0:
		res.Winner = second.Seat
	}
	m.hand.Results = append(m.hand.Results, res)
	m.hand.Table = nil

	// winner leads; after a tie the same player leads again
	if !res.Tie() {
		m.hand.Leader = res.Winner
	}
	m.hand.Turn = m.hand.Leader

	winner, decided, err := decideHand(m.hand.Results, m.hand.FirstLeader)
	if err != nil {
		m.abortHand()
		return fmt.Errorf("hand %d: %w", m.hand.Number, err)
	}
	if decided {
		m.scoreHand(winner)
		return nil
	}
	if m.hand.Trick >= MaxTricks {
		m.abortHand()
		return fmt.Errorf("hand %d: %w: undecided after trick %d", m.hand.Number, ErrLogicInvariantViolation, m.hand.Trick)
	}
	m.hand.Trick++
	m.phase = trickPhase(m.hand.Trick)
	return nil
}
