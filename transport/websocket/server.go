package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/spargy4050v/tic-tac-toe/internal/tictactoe"
)

const shutdownTimeout = 5 * time.Second

type sessionUseCase interface {
	CreateSession(ctx context.Context) (tictactoe.Snapshot, error)
	GetSession(ctx context.Context, id string) (tictactoe.Snapshot, error)
	PlayAt(ctx context.Context, id string, cell int) (tictactoe.Snapshot, error)
	JumpTo(ctx context.Context, id string, position int) (tictactoe.Snapshot, error)
	ToggleMoveOrder(ctx context.Context, id string) (tictactoe.Snapshot, error)
	Reset(ctx context.Context, id string) (tictactoe.Snapshot, error)
}

type handlerFunc func(ctx context.Context, conn *connection, payload RequestPayload) (tictactoe.Snapshot, error)

type Server struct {
	logger   *slog.Logger
	sessions sessionUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

// connection holds per-socket state. Only the goroutine serving the socket touches it.
type connection struct {
	conn      *websocket.Conn
	sessionID string
}

func New(logger *slog.Logger, sessions sessionUseCase) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionSessionNew] = server.handleNewSession
	server.handlers[actionSessionGet] = server.handleGetSession
	server.handlers[actionSessionPlay] = server.handlePlay
	server.handlers[actionSessionJump] = server.handleJump
	server.handlers[actionSessionOrder] = server.handleToggleOrder
	server.handlers[actionSessionReset] = server.handleReset

	return server
}

// Handler returns the HTTP handler serving the /ws endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it once ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	if err = that.handleMessages(ctx, &connection{conn: conn}); err != nil {
		log.Info("WebSocket connection closed", "reason", err)
	}
}

// handleMessages - processes messages from the client until the socket closes.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			if err = that.sendError(conn, actionError, "malformed message"); err != nil {
				return err
			}
			continue
		}

		if err = that.dispatch(ctx, conn, &message); err != nil {
			return err
		}
	}
}

// dispatch runs the handler for message and writes its reply. Only write failures are returned.
func (that *Server) dispatch(ctx context.Context, conn *connection, message *Message) error {
	log := that.logger.With("method", "dispatch", "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Error("unknown action")
		return that.sendError(conn, message.Action, "unknown action")
	}

	var payload RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			log.Error("failed to unmarshal payload", "error", err)
			return that.sendError(conn, message.Action, "invalid payload")
		}
	}

	snapshot, err := handler(ctx, conn, payload)
	if err != nil {
		log.Debug("action rejected", "error", err)
		return that.sendError(conn, message.Action, err.Error())
	}

	return that.sendMessage(conn, message.Action, ResponsePayload{Session: &snapshot})
}

func (that *Server) sendMessage(conn *connection, action string, payload ResponsePayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = conn.conn.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *connection, action, text string) error {
	return that.sendMessage(conn, action, ResponsePayload{Error: text})
}
