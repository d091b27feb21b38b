package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spargy4050v/tic-tac-toe/internal/entity"
)

func TestSession_Moves(t *testing.T) {
	t.Run("Single entry reads Start Game", func(t *testing.T) {
		session := NewSession()

		assert.Equal(t, []MoveEntry{
			{Position: 0, Cell: -1, Description: "Start Game", Current: true},
		}, session.Moves())
	})

	t.Run("Describes each position relative to the cursor", func(t *testing.T) {
		// Given: two moves were played and the cursor sits on move #1
		session := NewSession()
		playAll(t, session, 4, 0)
		require.NoError(t, session.JumpTo(1))

		// When: listing moves
		moves := session.Moves()

		// Then: every entry carries its cell, mark and description
		assert.Equal(t, []MoveEntry{
			{Position: 0, Cell: -1, Description: "Go to game start"},
			{Position: 1, Cell: 4, Mark: entity.X, Description: "You are at move #1", Current: true},
			{Position: 2, Cell: 0, Mark: entity.O, Description: "Go to move #2"},
		}, moves)
	})

	t.Run("Descending order reverses the list", func(t *testing.T) {
		// Given: two moves were played, cursor at game start, descending order
		session := NewSession()
		playAll(t, session, 4, 0)
		require.NoError(t, session.JumpTo(0))
		session.ToggleMoveOrder()

		// When: listing moves
		moves := session.Moves()

		// Then: the newest move comes first
		require.Len(t, moves, 3)
		assert.Equal(t, 2, moves[0].Position)
		assert.Equal(t, "You are at game start", moves[2].Description)
	})
}

func TestSession_Snapshot(t *testing.T) {
	t.Run("In progress", func(t *testing.T) {
		// Given: X played the centre
		session := NewSession()
		playAll(t, session, 4)

		// When: taking a snapshot
		snapshot := session.Snapshot()

		// Then: it reflects the current position
		assert.Equal(t, entity.X, snapshot.Board[4])
		assert.Equal(t, entity.O, snapshot.NextMark)
		assert.Equal(t, "Next player: O", snapshot.Status)
		assert.Equal(t, []int{4}, snapshot.DisabledCells)
		assert.Equal(t, 1, snapshot.Cursor)
		assert.Equal(t, 2, snapshot.HistoryLength)
		assert.False(t, snapshot.ResetOffered)
	})

	t.Run("Win disables every cell and does not offer reset", func(t *testing.T) {
		// Given: X won
		session := NewSession()
		playAll(t, session, 0, 4, 1, 3, 2)

		// When: taking a snapshot
		snapshot := session.Snapshot()

		// Then: the board is locked
		assert.Equal(t, StateDecided, snapshot.State)
		assert.Len(t, snapshot.DisabledCells, entity.BoardSize)
		assert.False(t, snapshot.ResetOffered)
		assert.True(t, snapshot.Outcome.Contains(1))
	})
}
