package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"pyrolysis_sim/internal/logger"
	"pyrolysis_sim/internal/service"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000
)

// wsEnvelope is the frame pushed to dashboard clients.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// The dashboard may be served from another origin.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// stateStream pushes committed plant snapshots to one client.
type stateStream struct {
	conn     *websocket.Conn
	monitor  service.Monitoring
	log      *logger.Logger
	interval time.Duration
	closed   chan struct{}
}

// @Summary      Plant state stream
// @Description  Pushes the full plant state every interval (?interval=500ms or ?interval_ms=500, at most 10s)
// @Tags         system
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	s := &stateStream{
		conn:     conn,
		monitor:  h.services.Monitoring,
		log:      h.log,
		interval: interval,
		closed:   make(chan struct{}),
	}
	h.log.Debugw("ws_client_connected", "remote", c.ClientIP(), "interval", interval)
	s.run(c.Request.Context().Done())
}

// run blocks until the client goes away, a write fails or stop fires.
func (s *stateStream) run(stop <-chan struct{}) {
	s.conn.SetReadLimit(maxMsgSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go s.drain()

	if err := s.push(); err != nil {
		s.log.Infow("ws_write_failed_initial", "err", err)
		return
	}

	snapshots := time.NewTicker(s.interval)
	defer snapshots.Stop()
	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()

	for {
		select {
		case <-s.closed:
			return
		case <-stop:
			return
		case <-pings.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-snapshots.C:
			if err := s.push(); err != nil {
				s.log.Infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

// drain consumes client frames so pongs and close frames are processed.
// Clients are not expected to send anything else.
func (s *stateStream) drain() {
	defer close(s.closed)
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

func (s *stateStream) push() error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(wsEnvelope{Type: "state", Data: s.monitor.GetState()})
}

// parseInterval honours ?interval=<duration> first, then ?interval_ms=<n>.
// Out-of-range or malformed values fall back to the configured default.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return h.streamInterval
}
