package apperror

import "errors"

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrGameFinished = errors.New("game is already finished")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidMark  = errors.New("invalid mark")

	ErrOutOfRange = errors.New("history position out of range")

	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many active sessions")
)
