package websocket

import (
	"encoding/json"

	"github.com/stemsi/attendance-backend/internal/model"
)

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventConnected Event = "connected"
	EventChange    Event = "change"
	EventPong      Event = "pong"
	EventError     Event = "error"
)

// ConnectedResponse greets a dashboard once the subscription is live.
type ConnectedResponse struct {
	Event       Event              `json:"event"`
	Permissions []model.Permission `json:"permissions"`
}

// ChangeResponse wraps a dashboard event published by a write. Data is forwarded
// as published, without re-encoding.
type ChangeResponse struct {
	Event Event           `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
