package game

import "errors"

var (
	ErrNotYourTurn    = errors.New("not your turn")
	ErrCardNotInHand  = errors.New("card not in hand")
	ErrNoActiveHand   = errors.New("no trick in progress")
	ErrUnknownSeat    = errors.New("seat not occupied")
	ErrRoomFull       = errors.New("room full")
	ErrSeatsNotFilled = errors.New("both seats must be filled")
	ErrHandInProgress = errors.New("hand still in progress")
	ErrMatchOver      = errors.New("match over")
	ErrMatchNotOver   = errors.New("match not over")

	// ErrInsufficientCards cannot happen with a fresh deck.
	ErrInsufficientCards = errors.New("insufficient cards to deal")

	// ErrLogicInvariantViolation means the hand rules produced no winner. It
	// is a bug, not a user error; the hand is aborted.
	ErrLogicInvariantViolation = errors.New("logic invariant violation")
)
