package game

import "fmt"

const (
	MaxTricks = 3
	// HandSize is one card per trick.
	HandSize = MaxTricks
)

type Play struct {
	Seat int
	Card Card
}

// TrickResult is a resolved trick. Winner is NoWinner when the cards tied.
type TrickResult struct {
	Winner int
	Plays  []Play
}

func (r TrickResult) Tie() bool { return r.Winner == NoWinner }

// Hand is one deal cycle ("mão").
type Hand struct {
	Number      int
	Vira        Card
	Manilhas    Manilhas
	Trick       int
	Results     []TrickResult
	Value       int
	Leader      int // leads the current trick
	FirstLeader int // led trick 1, breaks a triple tie
	Turn        int
	Table       []Play
	Winner      int
}

func trickPhase(n int) Phase {
	switch n {
	case 1:
		return PhaseTrick1
	case 2:
		return PhaseTrick2
	default:
		return PhaseTrick3
	}
}

// StartNextHand deals a new hand once the previous one was scored (or
// aborted).
func (m *Match) StartNextHand() error {
	switch {
	case !m.full():
		return ErrSeatsNotFilled
	case m.phase == PhaseMatchOver:
		return ErrMatchOver
	case m.phase.InTrick():
		return ErrHandInProgress
	}
	return m.deal()
}

// Rematch starts a new match at 0-0 with the same players.
func (m *Match) Rematch() error {
	if m.phase != PhaseMatchOver {
		return ErrMatchNotOver
	}
	if !m.full() {
		return ErrSeatsNotFilled
	}
	m.reset()
	return m.deal()
}

func (m *Match) deal() error {
	m.phase = PhaseDealing
	deck := NewDeck()
	Shuffle(deck, m.rng)
	deck = Cut(deck, 1+m.rng.Intn(len(deck)-1))
	hands, vira, err := Deal(deck, Seats, HandSize)
	if err != nil {
		return err
	}

	m.dealer = (m.dealer + 1) % Seats
	lead := (m.dealer + 1) % Seats
	for i, p := range m.players {
		p.Hand = hands[i]
	}
	m.hand = Hand{
		Number:      m.hand.Number + 1,
		Vira:        vira,
		Manilhas:    ManilhasFor(vira),
		Trick:       1,
		Value:       m.rules.HandValue,
		Leader:      lead,
		FirstLeader: lead,
		Turn:        lead,
		Winner:      NoWinner,
	}
	m.phase = PhaseTrick1
	return nil
}

// decideHand applies the hand-winner rules in order; the first one that
// matches decides. ok is false while another trick must be played.
func decideHand(results []TrickResult, firstLeader int) (winner int, ok bool, err error) {
	if len(results) > MaxTricks {
		return NoWinner, false, fmt.Errorf("%w: %d tricks recorded", ErrLogicInvariantViolation, len(results))
	}
	var wins [Seats]int
	for _, r := range results {
		if r.Tie() {
			continue
		}
		if r.Winner < 0 || r.Winner >= Seats {
			return NoWinner, false, fmt.Errorf("%w: trick won by seat %d", ErrLogicInvariantViolation, r.Winner)
		}
		wins[r.Winner]++
	}
	for seat, n := range wins {
		if n >= 2 {
			return seat, true, nil
		}
	}

	n := len(results)
	switch {
	case n >= 2 && results[0].Tie():
		if !results[1].Tie() {
			return results[1].Winner, true, nil
		}
		if n < MaxTricks {
			return NoWinner, false, nil
		}
		if !results[2].Tie() {
			return results[2].Winner, true, nil
		}
		return firstLeader, true, nil
	case n >= 2 && results[1].Tie():
		return results[0].Winner, true, nil
	case n == MaxTricks:
		if !results[2].Tie() {
			return results[2].Winner, true, nil
		}
		return results[0].Winner, true, nil
	case n < MaxTricks:
		return NoWinner, false, nil
	}
	return NoWinner, false, fmt.Errorf("%w: no hand winner after %d tricks", ErrLogicInvariantViolation, n)
}

func (m *Match) scoreHand(seat int) {
	team := TeamOf(seat)
	m.scores[team] += m.hand.Value
	m.hand.Winner = seat
	m.discardHands()
	m.phase = PhaseScoring
	if m.rules.TargetScore > 0 && m.scores[team] >= m.rules.TargetScore {
		m.winner = team
		m.phase = PhaseMatchOver
	}
}

// abortHand drops a hand whose result cannot be trusted. Nobody scores; the
// next StartNextHand deals again.
func (m *Match) abortHand() {
	m.discardHands()
	m.hand.Table = nil
	m.hand.Turn = NoSeat
	m.phase = PhaseDealing
}

// Cards left when a hand is decided early are not played.
func (m *Match) discardHands() {
	for _, p := range m.players {
		if p != nil {
			p.Hand = nil
		}
	}
}
