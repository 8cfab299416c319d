package t2048

import "errors"

var (
	// ErrNoOpMove is returned when a direction leaves the grid unchanged.
	ErrNoOpMove = errors.New("t2048: move does not change the grid")

	// ErrSessionTerminal is returned for moves or undos after the game is over.
	ErrSessionTerminal = errors.New("t2048: session is over")

	// ErrUndoExhausted is returned when the undo budget or the history is used up.
	ErrUndoExhausted = errors.New("t2048: no undo available")

	// ErrInvalidSnapshot is returned when a snapshot cannot be restored.
	ErrInvalidSnapshot = errors.New("t2048: invalid snapshot")

	// ErrInvalidOptions is returned when session options are out of range.
	ErrInvalidOptions = errors.New("t2048: invalid options")
)
