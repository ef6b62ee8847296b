package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/retro-quiz/internal/service"
	ws "github.com/stemsi/retro-quiz/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live statistics over WebSocket.
type WSHandler struct {
	quizService  *service.QuizService
	log          zerolog.Logger
	upgrader     websocket.Upgrader
	pushInterval time.Duration
}

// NewWSHandler creates a new WSHandler. Statistics are checked for changes
// every pushInterval.
func NewWSHandler(quizService *service.QuizService, log zerolog.Logger, allowedOrigins []string, pushInterval time.Duration) *WSHandler {
	if pushInterval <= 0 {
		pushInterval = time.Second
	}
	return &WSHandler{
		quizService:  quizService,
		log:          log.With().Str("component", "ws_handler").Logger(),
		upgrader:     buildUpgrader(allowedOrigins),
		pushInterval: pushInterval,
	}
}

// StatsStream godoc
// WS /ws/stats
// Sends a stats snapshot on connect and again whenever the counters change.
func (h *WSHandler) StatsStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	connLog := h.log.With().Str("remote", c.ClientIP()).Logger()
	connLog.Info().Msg("Stats subscriber connected")

	// All writes happen on this goroutine; the reader only forwards actions.
	actions := make(chan ws.Action, 8)
	done := make(chan struct{})
	go h.readLoop(conn, connLog, actions, done)

	lastVersion, err := h.pushStats(conn)
	if err != nil {
		return
	}

	pollTicker := time.NewTicker(h.pushInterval)
	defer pollTicker.Stop()
	pingTicker := time.NewTicker(ws.PingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-done:
			connLog.Info().Msg("Stats subscriber disconnected")
			return

		case action := <-actions:
			var werr error
			switch action {
			case ws.ActionPing:
				werr = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			case ws.ActionRefresh:
				lastVersion, werr = h.pushStats(conn)
			default:
				werr = ws.WriteError(conn, "unknown action: "+string(action))
			}
			if werr != nil {
				return
			}

		case <-pollTicker.C:
			if h.quizService.StatsRevision() == lastVersion {
				continue
			}
			if lastVersion, err = h.pushStats(conn); err != nil {
				return
			}

		case <-pingTicker.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) readLoop(conn *websocket.Conn, log zerolog.Logger, actions chan<- ws.Action, done chan<- struct{}) {
	defer close(done)
	ws.KeepAlive(conn)

	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("Unexpected close")
			}
			return
		}
		select {
		case actions <- msg.Action:
		default:
			log.Warn().Str("action", string(msg.Action)).Msg("Dropping action, subscriber too chatty")
		}
	}
}

func (h *WSHandler) pushStats(conn *websocket.Conn) (uint64, error) {
	stats, version := h.quizService.StatsVersion()
	err := ws.WriteTyped(conn, ws.StatsResponse{
		Event:   ws.EventStats,
		Version: version,
		Stats:   stats,
	})
	return version, err
}
