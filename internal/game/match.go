package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const (
	Seats = 2
	Teams = 2

	// NoSeat marks "nobody": no turn, a tied trick, no winner yet.
	NoSeat   = -1
	NoWinner = NoSeat
)

// Phase is the lifecycle stage of a match.
type Phase string

const (
	PhaseLobby     Phase = "lobby"
	PhaseDealing   Phase = "dealing"
	PhaseTrick1    Phase = "trick_1"
	PhaseTrick2    Phase = "trick_2"
	PhaseTrick3    Phase = "trick_3"
	PhaseScoring   Phase = "scoring"
	PhaseMatchOver Phase = "match_over"
)

func (p Phase) InTrick() bool {
	return p == PhaseTrick1 || p == PhaseTrick2 || p == PhaseTrick3
}

type Rules struct {
	HandValue   int
	TargetScore int // 0 plays forever
}

func DefaultRules() Rules {
	return Rules{HandValue: 1, TargetScore: 12}
}

type Player struct {
	ID   string
	Name string
	Hand []Card
}

// TeamOf maps a seat to its team. With two seats every player is a team.
func TeamOf(seat int) int { return seat % Teams }

// Match is the aggregate state of one two-seat game. It is not safe for
// concurrent use; the table serializes every call.
type Match struct {
	id      string
	rules   Rules
	rng     *rand.Rand
	players [Seats]*Player
	scores  [Teams]int
	hand    Hand
	phase   Phase
	dealer  int
	winner  int
}

// NewMatch builds an empty match. A nil rng is seeded from the clock.
func NewMatch(rules Rules, rng *rand.Rand) *Match {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := &Match{id: uuid.NewString(), rules: rules, rng: rng, phase: PhaseLobby}
	m.reset()
	return m
}

func (m *Match) reset() {
	m.scores = [Teams]int{}
	m.winner = NoWinner
	m.dealer = 0 // the first deal passes the deal to seat 1, so seat 0 leads
	m.hand = Hand{Leader: NoSeat, FirstLeader: NoSeat, Turn: NoSeat, Winner: NoWinner}
}

// Join seats a player in the lowest free seat. Filling the last seat starts
// a fresh match and deals the first hand.
func (m *Match) Join(playerID, name string) (int, error) {
	seat := NoSeat
	for i, p := range m.players {
		if p == nil {
			seat = i
			break
		}
	}
	if seat == NoSeat {
		return NoSeat, ErrRoomFull
	}
	if name == "" {
		name = fmt.Sprintf("Jogador %d", seat+1)
	}
	m.players[seat] = &Player{ID: playerID, Name: name}
	if !m.full() {
		return seat, nil
	}
	m.reset()
	if err := m.deal(); err != nil {
		return seat, err
	}
	return seat, nil
}

// Leave frees the seat and terminates the running match. The remaining
// player keeps the seat and waits in a new match.
func (m *Match) Leave(seat int) error {
	if !m.occupied(seat) {
		return ErrUnknownSeat
	}
	m.players[seat] = nil
	for _, p := range m.players {
		if p != nil {
			p.Hand = nil
		}
	}
	m.id = uuid.NewString()
	m.reset()
	m.phase = PhaseLobby
	return nil
}

func (m *Match) Rename(seat int, name string) error {
	if !m.occupied(seat) {
		return ErrUnknownSeat
	}
	if name != "" {
		m.players[seat].Name = name
	}
	return nil
}

func (m *Match) occupied(seat int) bool {
	return seat >= 0 && seat < Seats && m.players[seat] != nil
}

func (m *Match) full() bool {
	for _, p := range m.players {
		if p == nil {
			return false
		}
	}
	return true
}

func (m *Match) ID() string { return m.id }
func (m *Match) Seats() int { return Seats }
func (m *Match) Phase() Phase { return m.phase }
func (m *Match) Rules() Rules { return m.rules }
func (m *Match) HandNumber() int { return m.hand.Number }
func (m *Match) Scores() [Teams]int { return m.scores }

// Winner is the team that reached the target score, or NoWinner.
func (m *Match) Winner() int { return m.winner }

// Seated lists the occupied seats in order.
func (m *Match) Seated() []int {
	out := make([]int, 0, Seats)
	for i, p := range m.players {
		if p != nil {
			out = append(out, i)
		}
	}
	return out
}
