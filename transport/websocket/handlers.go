package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/spargy4050v/tic-tac-toe/internal/tictactoe"
)

var (
	ErrNoSession    = errors.New("no session selected")
	ErrMissingCell  = errors.New("cell is required")
	ErrMissingIndex = errors.New("position is required")
)

func (that *Server) handleNewSession(ctx context.Context, conn *connection, _ RequestPayload) (tictactoe.Snapshot, error) {
	snapshot, err := that.sessions.CreateSession(ctx)
	if err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to create session: %w", err)
	}

	conn.sessionID = snapshot.ID

	that.logger.Info("session bound to connection", "sessionID", snapshot.ID)

	return snapshot, nil
}

func (that *Server) handleGetSession(ctx context.Context, conn *connection, payload RequestPayload) (tictactoe.Snapshot, error) {
	id, err := conn.resolveSession(payload)
	if err != nil {
		return tictactoe.Snapshot{}, err
	}

	snapshot, err := that.sessions.GetSession(ctx, id)
	if err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to get session: %w", err)
	}

	conn.sessionID = id

	return snapshot, nil
}

func (that *Server) handlePlay(ctx context.Context, conn *connection, payload RequestPayload) (tictactoe.Snapshot, error) {
	id, err := conn.resolveSession(payload)
	if err != nil {
		return tictactoe.Snapshot{}, err
	}

	if payload.Cell == nil {
		return tictactoe.Snapshot{}, ErrMissingCell
	}

	snapshot, err := that.sessions.PlayAt(ctx, id, *payload.Cell)
	if err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to play: %w", err)
	}

	return snapshot, nil
}

func (that *Server) handleJump(ctx context.Context, conn *connection, payload RequestPayload) (tictactoe.Snapshot, error) {
	id, err := conn.resolveSession(payload)
	if err != nil {
		return tictactoe.Snapshot{}, err
	}

	if payload.Position == nil {
		return tictactoe.Snapshot{}, ErrMissingIndex
	}

	snapshot, err := that.sessions.JumpTo(ctx, id, *payload.Position)
	if err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to jump: %w", err)
	}

	return snapshot, nil
}

func (that *Server) handleToggleOrder(ctx context.Context, conn *connection, payload RequestPayload) (tictactoe.Snapshot, error) {
	id, err := conn.resolveSession(payload)
	if err != nil {
		return tictactoe.Snapshot{}, err
	}

	snapshot, err := that.sessions.ToggleMoveOrder(ctx, id)
	if err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to toggle move order: %w", err)
	}

	return snapshot, nil
}

func (that *Server) handleReset(ctx context.Context, conn *connection, payload RequestPayload) (tictactoe.Snapshot, error) {
	id, err := conn.resolveSession(payload)
	if err != nil {
		return tictactoe.Snapshot{}, err
	}

	snapshot, err := that.sessions.Reset(ctx, id)
	if err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to reset: %w", err)
	}

	return snapshot, nil
}

// resolveSession prefers the id in the payload and falls back to the session the connection created last.
func (conn *connection) resolveSession(payload RequestPayload) (string, error) {
	if payload.SessionID != "" {
		return payload.SessionID, nil
	}

	if conn.sessionID == "" {
		return "", ErrNoSession
	}

	return conn.sessionID, nil
}
