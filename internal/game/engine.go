package game

// Engine is what a table needs from a game: seat management, the single
// play intent, hand transitions and the per-seat projection.
type Engine interface {
	Seats() int
	Join(playerID, name string) (seat int, err error)
	Leave(seat int) error
	Rename(seat int, name string) error
	PlayCard(seat int, c Card) error
	StartNextHand() error
	Rematch() error

	Phase() Phase
	HandNumber() int
	Scores() [Teams]int
	Winner() int
	Seated() []int
	View(seat int) View
}

var _ Engine = (*Match)(nil)
