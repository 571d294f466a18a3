package apperrors

import (
	"errors"

	"github.com/palemoky/uno-online/internal/protocol"
)

// GameError is a rule or precondition failure reported back to the caller as data.
type GameError struct {
	Code    protocol.Status
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrNotSeated    = &GameError{Code: protocol.StatusNotSeated, Message: "player is not seated"}
	ErrNotYourTurn  = &GameError{Code: protocol.StatusRejected, Message: "not your turn"}
	ErrIllegalCard  = &GameError{Code: protocol.StatusRejected, Message: "card cannot be played on the top card"}
	ErrInvalidIndex = &GameError{Code: protocol.StatusRejected, Message: "invalid card index"}
	ErrGameOver     = &GameError{Code: protocol.StatusRejected, Message: "game already has a winner"}
	ErrNameTaken    = &GameError{Code: protocol.StatusNameTaken, Message: "name already taken"}
	ErrEmptyName    = &GameError{Code: protocol.StatusMalformed, Message: "name must not be empty"}
	ErrBadRequest   = &GameError{Code: protocol.StatusMalformed, Message: "malformed request"}
	ErrDeckEmpty    = &GameError{Code: protocol.StatusDeckEmpty, Message: "deck is empty"}
	ErrGameFull     = &GameError{Code: protocol.StatusGameFull, Message: "game is full"}
)

// StatusOf maps an error returned by the engine to its wire status.
// Unknown errors are reported as server errors.
func StatusOf(err error) protocol.Status {
	if err == nil {
		return protocol.StatusOK
	}
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		return gameErr.Code
	}
	if errors.Is(err, protocol.ErrMalformed) {
		return protocol.StatusMalformed
	}
	return protocol.StatusServerError
}
