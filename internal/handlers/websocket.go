package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/lucmas92/message-wall/internal/metrics"
	"github.com/lucmas92/message-wall/internal/notifier"
)

const (
	// writeWait bounds a single websocket write.
	writeWait = 10 * time.Second

	// pongWait is how long we keep a connection that stops answering pings.
	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

func (h *Handler) upgrader() websocket.Upgrader {
	allowed := make(map[string]bool, len(h.config.AllowedOrigins))
	for _, origin := range h.config.AllowedOrigins {
		allowed[origin] = true
	}
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				// non-browser clients: the token gate already applied
				return true
			}
			return allowed[origin]
		},
	}
}

// HandleWebSocket streams message change events to a display client. Each
// connection gets its own hub subscription; closing the socket tears the
// subscription down.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	events, unsubscribe, err := h.wall.Subscribe()
	if err != nil {
		if errors.Is(err, notifier.ErrClosed) {
			writeError(w, http.StatusServiceUnavailable, "transport_unavailable", "change feed is shutting down")
			return
		}
		log.Error().Err(err).Msg("websocket: subscribe failed")
		writeError(w, http.StatusInternalServerError, "transport_unavailable", "could not establish the change feed")
		return
	}

	upgrader := h.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		unsubscribe()
		log.Warn().Err(err).Msg("websocket: upgrade failed")
		return
	}

	metrics.SubscribersActive.Inc()
	log.Info().Str("client_ip", r.RemoteAddr).Msg("websocket: client connected")

	// reader: discards client frames, surfaces disconnects
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		unsubscribe()
		conn.Close()
		metrics.SubscribersActive.Dec()
		log.Info().Str("client_ip", r.RemoteAddr).Msg("websocket: client disconnected")
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				// hub shut down
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				log.Warn().Err(err).Msg("websocket: write failed")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
