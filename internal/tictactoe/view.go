package tictactoe

import (
	"slices"
	"strconv"

	"github.com/spargy4050v/tic-tac-toe/internal/entity"
)

// MoveEntry describes one history position for the move list.
// Cell and Mark identify the move that produced the board; both are empty for game start.
type MoveEntry struct {
	Position    int         `json:"position"`
	Cell        int         `json:"cell"`
	Mark        entity.Mark `json:"mark,omitempty"`
	Description string      `json:"description"`
	Current     bool        `json:"current"`
}

// Snapshot is the read-only view a renderer needs to draw the board, the status line and the move list.
type Snapshot struct {
	ID            string         `json:"id,omitempty"`
	Board         entity.Board   `json:"board"`
	Outcome       entity.Outcome `json:"outcome"`
	State         State          `json:"state"`
	NextMark      entity.Mark    `json:"next_mark"`
	Status        string         `json:"status"`
	Moves         []MoveEntry    `json:"moves"`
	Cursor        int            `json:"cursor"`
	HistoryLength int            `json:"history_length"`
	Ascending     bool           `json:"ascending"`
	DisabledCells []int          `json:"disabled_cells"`
	ResetOffered  bool           `json:"reset_offered"`
}

func (that *Session) Status() string {
	outcome := that.Outcome()

	switch outcome.Status {
	case entity.StatusWin:
		return "Winner: " + outcome.Winner.String()
	case entity.StatusDraw:
		return "It's a draw!"
	default:
		return "Next player: " + that.NextMark().String()
	}
}

// Moves lists every history position, in ascending or descending order depending on the toggle.
func (that *Session) Moves() []MoveEntry {
	moves := make([]MoveEntry, 0, len(that.history))

	for position := range that.history {
		entry := MoveEntry{
			Position:    position,
			Cell:        -1,
			Current:     position == that.cursor,
			Description: that.describe(position),
		}

		if position > 0 {
			entry.Cell, entry.Mark = changedCell(that.history[position-1], that.history[position])
		}

		moves = append(moves, entry)
	}

	if !that.ascending {
		slices.Reverse(moves)
	}

	return moves
}

func (that *Session) describe(position int) string {
	if len(that.history) == 1 {
		return "Start Game"
	}

	if position == that.cursor {
		if position == 0 {
			return "You are at game start"
		}
		return "You are at move #" + strconv.Itoa(position)
	}

	if position == 0 {
		return "Go to game start"
	}

	return "Go to move #" + strconv.Itoa(position)
}

// DisabledCells returns the cells a renderer should not offer: occupied cells, or all of them once decided.
func (that *Session) DisabledCells() []int {
	board := that.CurrentBoard()
	decided := that.Outcome().IsDecided()

	cells := make([]int, 0, entity.BoardSize)
	for cell, mark := range board {
		if decided || mark != entity.Empty {
			cells = append(cells, cell)
		}
	}

	return cells
}

func (that *Session) Snapshot() Snapshot {
	outcome := that.Outcome()

	return Snapshot{
		Board:         that.CurrentBoard(),
		Outcome:       outcome,
		State:         that.State(),
		NextMark:      that.NextMark(),
		Status:        that.Status(),
		Moves:         that.Moves(),
		Cursor:        that.cursor,
		HistoryLength: len(that.history),
		Ascending:     that.ascending,
		DisabledCells: that.DisabledCells(),
		ResetOffered:  outcome.Status == entity.StatusDraw,
	}
}

func changedCell(before, after entity.Board) (int, entity.Mark) {
	for cell := range after {
		if before[cell] != after[cell] {
			return cell, after[cell]
		}
	}

	return -1, entity.Empty
}
