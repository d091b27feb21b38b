package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

func NewRouter(logger *slog.Logger, sessions sessionUseCase) *mux.Router {
	h := newHandlers(logger, sessions)

	router := mux.NewRouter()
	router.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)

	router.HandleFunc("/sessions", h.createSession).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}", h.getSession).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{id}", h.deleteSession).Methods(http.MethodDelete)
	router.HandleFunc("/sessions/{id}/moves", h.playAt).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/jump", h.jumpTo).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/order", h.toggleMoveOrder).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/reset", h.reset).Methods(http.MethodPost)

	return router
}

// Start - starts HTTP server and stops it once ctx is done.
func Start(ctx context.Context, logger *slog.Logger, port string, sessions sessionUseCase) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(logger, sessions),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
