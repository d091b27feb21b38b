package entity

import (
	"fmt"

	"github.com/spargy4050v/tic-tac-toe/internal/apperror"
)

type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWin        Status = "win"
	StatusDraw       Status = "draw"
)

const BoardSize = 9

// WinCombos lists every winning line: rows top-to-bottom, columns left-to-right, then diagonals.
// DetectOutcome reports the first match in this order.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a row-major 3x3 grid. It is a value type: assigning or passing it copies every cell.
type Board [BoardSize]Mark

// Outcome classifies a board. Line and Winner are only set for StatusWin.
type Outcome struct {
	Status Status `json:"status"`
	Line   []int  `json:"line,omitempty"`
	Winner Mark   `json:"winner,omitempty"`
}

func (that Mark) IsPlayer() bool {
	return that == X || that == O
}

func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Mark) String() string {
	if that == Empty {
		return "-"
	}
	return string(that)
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

func (that Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

func (that Outcome) IsDecided() bool {
	return that.Status == StatusWin || that.Status == StatusDraw
}

// Contains reports whether cell is part of the winning line.
func (that Outcome) Contains(cell int) bool {
	for _, index := range that.Line {
		if index == cell {
			return true
		}
	}

	return false
}

// ApplyMove returns a copy of board with mark placed at cell. The input board is never modified.
func ApplyMove(board Board, cell int, mark Mark) (Board, error) {
	if cell < 0 || cell >= BoardSize {
		return board, fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrInvalidCell, cell)
	}

	if !mark.IsPlayer() {
		return board, fmt.Errorf("%w: %w: %q", apperror.ErrInvalidMove, apperror.ErrInvalidMark, string(mark))
	}

	if DetectOutcome(board).IsDecided() {
		return board, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameFinished)
	}

	if board[cell] != Empty {
		return board, fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrCellOccupied, cell)
	}

	board[cell] = mark

	return board, nil
}

func DetectOutcome(board Board) Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != Empty && a == b && b == c {
			return Outcome{
				Status: StatusWin,
				Line:   []int{combo[0], combo[1], combo[2]},
				Winner: a,
			}
		}
	}

	// the game continues until every square is taken
	if !board.IsFull() {
		return Outcome{Status: StatusInProgress}
	}

	return Outcome{Status: StatusDraw}
}
