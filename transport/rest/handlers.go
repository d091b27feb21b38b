package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spargy4050v/tic-tac-toe/internal/apperror"
	"github.com/spargy4050v/tic-tac-toe/internal/tictactoe"
)

type sessionUseCase interface {
	CreateSession(ctx context.Context) (tictactoe.Snapshot, error)
	GetSession(ctx context.Context, id string) (tictactoe.Snapshot, error)
	PlayAt(ctx context.Context, id string, cell int) (tictactoe.Snapshot, error)
	JumpTo(ctx context.Context, id string, position int) (tictactoe.Snapshot, error)
	ToggleMoveOrder(ctx context.Context, id string) (tictactoe.Snapshot, error)
	Reset(ctx context.Context, id string) (tictactoe.Snapshot, error)
	DeleteSession(ctx context.Context, id string) error
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

type jumpRequest struct {
	Position *int `json:"position"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger   *slog.Logger
	sessions sessionUseCase
}

func newHandlers(logger *slog.Logger, sessions sessionUseCase) *handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
	}
}

func (that *handlers) createSession(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.sessions.CreateSession(r.Context())
	if err != nil {
		that.writeError(w, "createSession", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, snapshot)
}

func (that *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.sessions.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.writeError(w, "getSession", err)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.DeleteSession(r.Context(), mux.Vars(r)["id"]); err != nil {
		that.writeError(w, "deleteSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) playAt(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing field: cell"})
		return
	}

	snapshot, err := that.sessions.PlayAt(r.Context(), mux.Vars(r)["id"], *req.Cell)
	if err != nil {
		that.writeError(w, "playAt", err)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *handlers) jumpTo(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Position == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing field: position"})
		return
	}

	snapshot, err := that.sessions.JumpTo(r.Context(), mux.Vars(r)["id"], *req.Position)
	if err != nil {
		that.writeError(w, "jumpTo", err)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *handlers) toggleMoveOrder(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.sessions.ToggleMoveOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.writeError(w, "toggleMoveOrder", err)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *handlers) reset(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.sessions.Reset(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.writeError(w, "reset", err)
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrOutOfRange), errors.Is(err, apperror.ErrInvalidMove):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrTooManySessions):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	} else {
		that.logger.Debug("request rejected", "method", method, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
