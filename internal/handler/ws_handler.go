package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/attendance-backend/internal/middleware"
	"github.com/stemsi/attendance-backend/internal/response"
	"github.com/stemsi/attendance-backend/internal/service"
	ws "github.com/stemsi/attendance-backend/internal/websocket"
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

// WSHandler pushes data-change events to connected dashboards.
type WSHandler struct {
	events   *service.EventService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(events *service.EventService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		events:   events,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// DashboardStream godoc
// WS /ws/v1/dashboard?token=
// Forwards every published change so open dashboards can refetch.
func (h *WSHandler) DashboardStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	if !h.events.Enabled() {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrLiveUpdatesOffline)
		return
	}

	ctx := c.Request.Context()
	pubsub := h.events.Subscribe(ctx)
	defer pubsub.Close()

	// Wait for the subscription to be confirmed so no event is missed after "connected".
	if _, err := pubsub.Receive(ctx); err != nil {
		h.log.Error().Err(err).Msg("Dashboard subscription failed")
		response.Fail(c, http.StatusServiceUnavailable, response.ErrLiveUpdatesOffline)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()
	ws.KeepAlive(conn)

	wsLog := h.log.With().Int("admin_id", claims.AdminID).Logger()
	wsLog.Info().Msg("Dashboard connected")

	if err := ws.WriteTyped(conn, ws.ConnectedResponse{Event: ws.EventConnected, Permissions: claims.Permissions}); err != nil {
		return
	}

	// The reader only reports actions; all writes happen on this goroutine.
	actions := make(chan ws.Action, 4)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(actions)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
			select {
			case actions <- msg.Action:
			case <-done:
				return
			}
		}
	}()

	ping := time.NewTicker(ws.PingPeriod)
	defer ping.Stop()

	events := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return

		case <-ping.C:
			if err := ws.WritePing(conn); err != nil {
				wsLog.Debug().Err(err).Msg("Ping failed")
				return
			}

		case action, ok := <-actions:
			if !ok {
				wsLog.Debug().Msg("Dashboard disconnected")
				return
			}
			switch action {
			case ws.ActionPing:
				err = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			default:
				err = ws.WriteError(conn, "unknown action: "+string(action))
			}
			if err != nil {
				return
			}

		case msg, ok := <-events:
			if !ok {
				return
			}
			if err := ws.WriteTyped(conn, ws.ChangeResponse{Event: ws.EventChange, Data: json.RawMessage(msg.Payload)}); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed")
				return
			}
		}
	}
}
