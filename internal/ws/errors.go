package ws

import (
	"errors"
	"fmt"

	"example.com/truco_online/internal/game"
)

var errBadRequest = errors.New("bad request")

func badRequest(reason string) error {
	return fmt.Errorf("%w: %s", errBadRequest, reason)
}

// errorCode maps an error to the code sent to the client.
func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrNotYourTurn):
		return "NOT_YOUR_TURN"
	case errors.Is(err, game.ErrCardNotInHand):
		return "CARD_NOT_IN_HAND"
	case errors.Is(err, game.ErrNoActiveHand):
		return "NO_ACTIVE_HAND"
	case errors.Is(err, game.ErrRoomFull):
		return "ROOM_FULL"
	case errors.Is(err, errBadRequest), errors.Is(err, game.ErrUnknownSeat):
		return "BAD_REQUEST"
	default:
		return "INTERNAL"
	}
}
