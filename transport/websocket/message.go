package websocket

import (
	"encoding/json"

	"github.com/spargy4050v/tic-tac-toe/internal/tictactoe"
)

const (
	actionSessionNew   = "session:new"
	actionSessionGet   = "session:get"
	actionSessionPlay  = "session:play"
	actionSessionJump  = "session:jump"
	actionSessionOrder = "session:order"
	actionSessionReset = "session:reset"

	actionError = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload carries the arguments of every action; unused fields are ignored.
type RequestPayload struct {
	SessionID string `json:"session_id,omitempty"`
	Cell      *int   `json:"cell,omitempty"`
	Position  *int   `json:"position,omitempty"`
}

type ResponsePayload struct {
	Session *tictactoe.Snapshot `json:"session,omitempty"`
	Error   string              `json:"error,omitempty"`
}
