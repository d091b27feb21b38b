package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/spargy4050v/tic-tac-toe/internal/usecase"
)

const (
	maxWaitDuration = 30 * time.Second

	idleTTL     = time.Hour
	maxSessions = 64
)

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Sessions *usecase.SessionManager
}

// New returns a context bound to the test lifetime and a fresh in-memory session manager.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	return ctx, &Suite{
		T:        t,
		Logger:   logger,
		Sessions: usecase.NewSessionManager(logger, idleTTL, maxSessions),
	}
}
