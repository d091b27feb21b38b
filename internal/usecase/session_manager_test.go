package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spargy4050v/tic-tac-toe/internal/apperror"
	"github.com/spargy4050v/tic-tac-toe/internal/entity"
	"github.com/spargy4050v/tic-tac-toe/internal/tictactoe"
)

func newTestManager(idleTTL time.Duration, maxSessions int) *SessionManager {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return NewSessionManager(logger, idleTTL, maxSessions)
}

func TestSessionManager_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates an empty session with an id", func(t *testing.T) {
		// Given: a manager without limits
		manager := newTestManager(0, 0)

		// When: creating a session
		snapshot, err := manager.CreateSession(ctx)

		// Then: the snapshot is the game start
		require.NoError(t, err)
		assert.NotEmpty(t, snapshot.ID)
		assert.Equal(t, tictactoe.StateEmpty, snapshot.State)
		assert.Equal(t, entity.X, snapshot.NextMark)
		assert.Equal(t, 1, manager.Len())
	})

	t.Run("Returns ErrTooManySessions once the cap is reached", func(t *testing.T) {
		// Given: a manager capped at one session that already holds one
		manager := newTestManager(0, 1)
		_, err := manager.CreateSession(ctx)
		require.NoError(t, err)

		// When: creating another
		_, err = manager.CreateSession(ctx)

		// Then: the cap rejects it
		require.ErrorIs(t, err, apperror.ErrTooManySessions)
		assert.Equal(t, 1, manager.Len())
	})

	t.Run("Evicts idle sessions before creating", func(t *testing.T) {
		// Given: a session last seen two hours ago with a one hour TTL
		manager := newTestManager(time.Hour, 1)
		current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		manager.now = func() time.Time { return current }

		old, err := manager.CreateSession(ctx)
		require.NoError(t, err)

		current = current.Add(2 * time.Hour)

		// When: creating a new session
		fresh, err := manager.CreateSession(ctx)

		// Then: the idle one is gone and the new one fits under the cap
		require.NoError(t, err)
		assert.NotEqual(t, old.ID, fresh.ID)
		assert.Equal(t, 1, manager.Len())

		_, err = manager.GetSession(ctx, old.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestSessionManager_PlayAt(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies a valid move", func(t *testing.T) {
		// Given: a new session
		manager := newTestManager(0, 0)
		created, err := manager.CreateSession(ctx)
		require.NoError(t, err)

		// When: X plays the centre
		snapshot, err := manager.PlayAt(ctx, created.ID, 4)

		// Then: the board holds X and O is next
		require.NoError(t, err)
		assert.Equal(t, entity.X, snapshot.Board[4])
		assert.Equal(t, entity.O, snapshot.NextMark)
		assert.Equal(t, created.ID, snapshot.ID)
	})

	t.Run("Ignores a move on an occupied cell", func(t *testing.T) {
		// Given: X played cell 0
		manager := newTestManager(0, 0)
		created, err := manager.CreateSession(ctx)
		require.NoError(t, err)
		before, err := manager.PlayAt(ctx, created.ID, 0)
		require.NoError(t, err)

		// When: O clicks cell 0
		after, err := manager.PlayAt(ctx, created.ID, 0)

		// Then: no error and the state is unchanged
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Returns ErrSessionNotFound for unknown ids", func(t *testing.T) {
		manager := newTestManager(0, 0)

		_, err := manager.PlayAt(ctx, "missing", 0)

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestSessionManager_JumpTo(t *testing.T) {
	ctx := context.Background()

	t.Run("Moves the cursor", func(t *testing.T) {
		// Given: two moves were played
		manager := newTestManager(0, 0)
		created, err := manager.CreateSession(ctx)
		require.NoError(t, err)
		_, err = manager.PlayAt(ctx, created.ID, 0)
		require.NoError(t, err)
		_, err = manager.PlayAt(ctx, created.ID, 4)
		require.NoError(t, err)

		// When: jumping to move #1
		snapshot, err := manager.JumpTo(ctx, created.ID, 1)

		// Then: the cursor moved but history is kept
		require.NoError(t, err)
		assert.Equal(t, 1, snapshot.Cursor)
		assert.Equal(t, 3, snapshot.HistoryLength)
	})

	t.Run("Propagates ErrOutOfRange with the unchanged snapshot", func(t *testing.T) {
		// Given: a new session
		manager := newTestManager(0, 0)
		created, err := manager.CreateSession(ctx)
		require.NoError(t, err)

		// When: jumping past the end
		snapshot, err := manager.JumpTo(ctx, created.ID, 3)

		// Then: the jump is rejected
		require.ErrorIs(t, err, apperror.ErrOutOfRange)
		assert.Equal(t, 0, snapshot.Cursor)
	})
}

func TestSessionManager_ToggleAndReset(t *testing.T) {
	ctx := context.Background()

	// Given: a session with one move
	manager := newTestManager(0, 0)
	created, err := manager.CreateSession(ctx)
	require.NoError(t, err)
	_, err = manager.PlayAt(ctx, created.ID, 0)
	require.NoError(t, err)

	// When: toggling the order
	toggled, err := manager.ToggleMoveOrder(ctx, created.ID)
	require.NoError(t, err)

	// Then: the order is descending
	assert.False(t, toggled.Ascending)

	// When: resetting
	reset, err := manager.Reset(ctx, created.ID)
	require.NoError(t, err)

	// Then: only the game start remains
	assert.Equal(t, 1, reset.HistoryLength)
	assert.Equal(t, tictactoe.StateEmpty, reset.State)
}

func TestSessionManager_DeleteSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes an existing session", func(t *testing.T) {
		manager := newTestManager(0, 0)
		created, err := manager.CreateSession(ctx)
		require.NoError(t, err)

		err = manager.DeleteSession(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, 0, manager.Len())
	})

	t.Run("Returns ErrSessionNotFound for unknown ids", func(t *testing.T) {
		manager := newTestManager(0, 0)

		err := manager.DeleteSession(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
