package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spargy4050v/tic-tac-toe/internal/apperror"
	"github.com/spargy4050v/tic-tac-toe/internal/tictactoe"
)

type entry struct {
	session  *tictactoe.Session
	lastSeen time.Time
}

// SessionManager keeps every live session in memory. All access goes through one mutex.
type SessionManager struct {
	logger *slog.Logger

	idleTTL     time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewSessionManager - idleTTL <= 0 disables eviction, maxSessions <= 0 disables the cap.
func NewSessionManager(logger *slog.Logger, idleTTL time.Duration, maxSessions int) *SessionManager {
	return &SessionManager{
		logger: logger.With("component", "session_manager"),

		idleTTL:     idleTTL,
		maxSessions: maxSessions,
		now:         time.Now,

		sessions: make(map[string]*entry),
	}
}

func (that *SessionManager) CreateSession(_ context.Context) (tictactoe.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.evictIdle()

	if that.maxSessions > 0 && len(that.sessions) >= that.maxSessions {
		return tictactoe.Snapshot{}, fmt.Errorf("%w: limit %d", apperror.ErrTooManySessions, that.maxSessions)
	}

	id := uuid.NewString()
	that.sessions[id] = &entry{
		session:  tictactoe.NewSession(),
		lastSeen: that.now(),
	}

	that.logger.Info("session created", "sessionID", id)

	return that.snapshot(id), nil
}

func (that *SessionManager) GetSession(_ context.Context, id string) (tictactoe.Snapshot, error) {
	return that.withSession(id, func(*tictactoe.Session) error { return nil })
}

// PlayAt ignores rejected moves: the snapshot comes back unchanged and no error is returned.
func (that *SessionManager) PlayAt(_ context.Context, id string, cell int) (tictactoe.Snapshot, error) {
	log := that.logger.With("method", "PlayAt", "sessionID", id)

	return that.withSession(id, func(session *tictactoe.Session) error {
		err := session.PlayAt(cell)
		if errors.Is(err, apperror.ErrInvalidMove) {
			log.Debug("move ignored", "cell", cell, "reason", err)
			return nil
		}

		return err
	})
}

func (that *SessionManager) JumpTo(_ context.Context, id string, position int) (tictactoe.Snapshot, error) {
	return that.withSession(id, func(session *tictactoe.Session) error {
		return session.JumpTo(position)
	})
}

func (that *SessionManager) ToggleMoveOrder(_ context.Context, id string) (tictactoe.Snapshot, error) {
	return that.withSession(id, func(session *tictactoe.Session) error {
		session.ToggleMoveOrder()
		return nil
	})
}

func (that *SessionManager) Reset(_ context.Context, id string) (tictactoe.Snapshot, error) {
	return that.withSession(id, func(session *tictactoe.Session) error {
		session.Reset()
		return nil
	})
}

func (that *SessionManager) DeleteSession(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	delete(that.sessions, id)

	that.logger.Info("session deleted", "sessionID", id)

	return nil
}

func (that *SessionManager) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.sessions)
}

func (that *SessionManager) withSession(id string, apply func(*tictactoe.Session) error) (tictactoe.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	existing, ok := that.sessions[id]
	if !ok {
		return tictactoe.Snapshot{}, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	existing.lastSeen = that.now()

	if err := apply(existing.session); err != nil {
		return that.snapshot(id), fmt.Errorf("session %s: %w", id, err)
	}

	return that.snapshot(id), nil
}

// snapshot must be called with mu held.
func (that *SessionManager) snapshot(id string) tictactoe.Snapshot {
	snapshot := that.sessions[id].session.Snapshot()
	snapshot.ID = id

	return snapshot
}

// evictIdle must be called with mu held.
func (that *SessionManager) evictIdle() {
	if that.idleTTL <= 0 {
		return
	}

	deadline := that.now().Add(-that.idleTTL)
	for id, existing := range that.sessions {
		if existing.lastSeen.Before(deadline) {
			delete(that.sessions, id)
			that.logger.Info("idle session evicted", "sessionID", id)
		}
	}
}
