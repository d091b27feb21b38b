package tictactoe

import (
	"fmt"

	"github.com/spargy4050v/tic-tac-toe/internal/apperror"
	"github.com/spargy4050v/tic-tac-toe/internal/entity"
)

type State string

const (
	StateEmpty      State = "empty"
	StateInProgress State = "in_progress"
	StateDecided    State = "decided"
)

// Session keeps the board history of one game and the position currently being viewed.
// It is not safe for concurrent use.
type Session struct {
	history   []entity.Board
	cursor    int
	ascending bool
}

func NewSession() *Session {
	return &Session{
		history:   []entity.Board{{}},
		ascending: true,
	}
}

// PlayAt places the next mark at cell on the current board. Any history after the cursor is
// discarded before the new board is appended. A rejected move wraps apperror.ErrInvalidMove
// and leaves the session untouched.
func (that *Session) PlayAt(cell int) error {
	next, err := entity.ApplyMove(that.CurrentBoard(), cell, that.NextMark())
	if err != nil {
		return fmt.Errorf("play at %d: %w", cell, err)
	}

	that.history = append(that.history[:that.cursor+1], next)
	that.cursor = len(that.history) - 1

	return nil
}

// JumpTo moves the cursor to position without altering history.
func (that *Session) JumpTo(position int) error {
	if position < 0 || position >= len(that.history) {
		return fmt.Errorf("%w: %d not in [0, %d]", apperror.ErrOutOfRange, position, len(that.history)-1)
	}

	that.cursor = position

	return nil
}

// Reset drops all history back to the empty board. The move order preference is kept.
func (that *Session) Reset() {
	that.history = []entity.Board{{}}
	that.cursor = 0
}

func (that *Session) ToggleMoveOrder() {
	that.ascending = !that.ascending
}

func (that *Session) CurrentBoard() entity.Board {
	return that.history[that.cursor]
}

// NextMark is X on even cursor positions and O on odd ones.
func (that *Session) NextMark() entity.Mark {
	if that.cursor%2 == 0 {
		return entity.X
	}
	return entity.O
}

func (that *Session) Outcome() entity.Outcome {
	return entity.DetectOutcome(that.CurrentBoard())
}

func (that *Session) State() State {
	switch {
	case that.Outcome().IsDecided():
		return StateDecided
	case that.CurrentBoard() == (entity.Board{}):
		return StateEmpty
	default:
		return StateInProgress
	}
}

// History returns a copy of every board from game start to the latest move.
func (that *Session) History() []entity.Board {
	return append([]entity.Board(nil), that.history...)
}

func (that *Session) Cursor() int {
	return that.cursor
}

func (that *Session) IsAscending() bool {
	return that.ascending
}
