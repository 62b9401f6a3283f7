package apperror

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrRoomFull         = errors.New("room is full")
	ErrAlreadyInRoom    = errors.New("player is already in a room")
	ErrNotInRoom        = errors.New("player is not in this room")
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrGameNotActive    = errors.New("game is not active")
	ErrOutOfBounds      = errors.New("shot out of bounds")
	ErrAlreadyTargeted  = errors.New("cell already targeted")
)
