package websocket

import "github.com/stemsi/retro-quiz/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing    Action = "ping"
	ActionRefresh Action = "refresh"
)

// RequestEnvelope is the only message shape clients send.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError Event = "error"
	EventStats Event = "stats"
	EventPong  Event = "pong"
)

// StatsResponse carries a full statistics snapshot. Version increases with
// every recorded attempt.
type StatsResponse struct {
	Event   Event                          `json:"event"`
	Version uint64                         `json:"version"`
	Stats   map[string]model.QuestionStats `json:"stats"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
