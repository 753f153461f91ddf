package hub

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"ocrstream/internal/ingest"
	"ocrstream/internal/pipeline"
	"ocrstream/pkg/types"
)

// inboundMsg is one message forwarded by a read pump to the loop.
type inboundMsg struct {
	c    *conn
	kind ingest.MessageKind
	data []byte
}

// Hub is the I/O side of the server. A single loop goroutine (Run) owns the
// registry and performs every websocket write, close and settings change;
// per-connection read pumps only forward what they read.
type Hub struct {
	cfg      Config
	pool     *pipeline.Pool
	ingestor *ingest.Ingestor
	ctrl     *Controller
	reg      *Registry
	upgrader websocket.Upgrader

	register chan *conn
	inbound  chan inboundMsg
	gone     chan *conn
	done     chan struct{}

	running atomic.Bool
	conns   atomic.Int64
	started time.Time
	log     zerolog.Logger
}

// New builds a Hub serving pool. The pool is expected to be started by the caller.
func New(pool *pipeline.Pool, cfg Config) *Hub {
	cfg = cfg.withDefaults()
	h := &Hub{
		cfg:      cfg,
		pool:     pool,
		ingestor: ingest.NewIngestor(cfg.Decoder, cfg.Logger),
		ctrl:     NewController(pool, cfg.ROI, cfg.OCRInterval, cfg.Logger),
		reg:      NewRegistry(),
		register: make(chan *conn),
		inbound:  make(chan inboundMsg),
		gone:     make(chan *conn),
		done:     make(chan struct{}),
		started:  time.Now(),
	}
	if cfg.Logger != nil {
		h.log = cfg.Logger.With().Str("component", "hub").Logger()
	} else {
		h.log = zerolog.Nop()
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	if len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(h.cfg.AllowedOrigins, origin)
}

// Run executes the loop until ctx is canceled, then closes every connection.
// It must be called once.
func (h *Hub) Run(ctx context.Context) error {
	if !h.running.CompareAndSwap(false, true) {
		return errors.New("hub already running")
	}
	defer close(h.done)
	defer h.running.Store(false)

	bt := time.NewTicker(h.cfg.BroadcastInterval)
	defer bt.Stop()
	lt := time.NewTicker(h.cfg.LivenessInterval)
	defer lt.Stop()

	h.log.Info().Dur("broadcast_interval", h.cfg.BroadcastInterval).Dur("idle_timeout", h.cfg.IdleTimeout).Msg("hub loop started")
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			h.log.Info().Msg("hub loop stopped")
			return nil
		case c := <-h.register:
			h.addConn(c)
		case m := <-h.inbound:
			h.handle(m)
		case c := <-h.gone:
			h.dropConn(c)
		case <-bt.C:
			h.broadcast()
		case now := <-lt.C:
			h.evictIdle(now)
		}
	}
}

// ServeHTTP upgrades the request and runs the connection's read pump until
// the client disconnects or the hub stops.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-h.done:
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	default:
	}
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}
	ws.SetReadLimit(h.cfg.MaxMessageBytes)
	c := &conn{id: uuid.NewString(), remote: r.RemoteAddr, ws: ws}
	select {
	case h.register <- c:
	case <-h.done:
		_ = ws.Close()
		return
	}
	h.readPump(c)
}

func (h *Hub) readPump(c *conn) {
	for {
		mt, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				h.log.Debug().Err(err).Str("conn", c.id).Msg("read error")
			}
			select {
			case h.gone <- c:
			case <-h.done:
			}
			return
		}
		kind := ingest.TextMessage
		if mt == websocket.BinaryMessage {
			kind = ingest.BinaryMessage
		}
		select {
		case h.inbound <- inboundMsg{c: c, kind: kind, data: data}:
		case <-h.done:
			return
		}
	}
}

func (h *Hub) addConn(c *conn) {
	h.reg.Add(c, time.Now())
	h.conns.Store(int64(h.reg.Len()))
	connectionsGauge.Inc()
	h.log.Info().Str("conn", c.id).Str("remote", c.remote).Msg("client connected")
	h.send(c, types.ConfigMessage{Type: types.MsgInit, Config: h.ctrl.Payload()})
}

func (h *Hub) dropConn(c *conn) {
	if !h.reg.Remove(c.id) {
		return
	}
	h.conns.Store(int64(h.reg.Len()))
	connectionsGauge.Dec()
	_ = c.ws.Close()
	h.log.Info().Str("conn", c.id).Msg("client disconnected")
}

func (h *Hub) closeAll() {
	h.reg.Each(func(c *conn) {
		c.close(websocket.CloseGoingAway, "server shutting down", h.cfg.WriteTimeout)
		connectionsGauge.Dec()
	})
	h.reg = NewRegistry()
	h.conns.Store(0)
}

// handle processes one inbound message. Messages from connections that are
// no longer registered are ignored.
func (h *Hub) handle(m inboundMsg) {
	c, ok := h.reg.Get(m.c.id)
	if !ok {
		return
	}
	ev, err := ingest.Parse(m.kind, m.data)
	if err != nil {
		inboundTotal.WithLabelValues("invalid").Inc()
		h.replyError(c, err)
		return
	}
	h.reg.Touch(c.id, time.Now())
	switch ev := ev.(type) {
	case ingest.PingEvent:
		inboundTotal.WithLabelValues(types.MsgPing).Inc()
		h.send(c, types.Pong{Type: types.MsgPong})
	case ingest.ConfigEvent:
		inboundTotal.WithLabelValues(types.MsgConfig).Inc()
		if _, err := h.ctrl.Apply(ev.Update); err != nil {
			h.replyError(c, err)
			return
		}
		h.send(c, types.ConfigMessage{Type: types.MsgConfigUpdated, Config: h.ctrl.Payload()})
	case ingest.FrameEvent:
		inboundTotal.WithLabelValues(types.MsgFrame).Inc()
		h.handleFrame(c, ev)
	}
}

// handleFrame acks every decoded frame whether or not the queue accepted it.
func (h *Hub) handleFrame(c *conn, ev ingest.FrameEvent) {
	f, err := h.ingestor.Frame(ev)
	if err != nil {
		h.replyError(c, err)
		return
	}
	queued := h.pool.Submit(f)
	if !queued {
		h.log.Debug().Str("conn", c.id).Int64("frame_id", f.ID).Msg("frame queue full, skipping frame")
	}
	h.send(c, types.FrameAck{Type: types.MsgFrameReceived, FrameID: f.ID})
	if !queued && h.cfg.NotifyDrops {
		h.send(c, types.FrameAck{Type: types.MsgFrameDropped, FrameID: f.ID})
	}
}

func (h *Hub) replyError(c *conn, err error) {
	h.log.Debug().Err(err).Str("conn", c.id).Msg("rejecting message")
	h.send(c, types.ErrorMessage{Type: types.MsgError, Message: err.Error()})
}

// send writes v to c. Failures are counted and logged; the connection is
// left for disconnect handling or liveness eviction.
func (h *Hub) send(c *conn, v any) {
	if err := c.writeJSON(v, h.cfg.WriteTimeout); err != nil {
		deliveryErrorsTotal.Inc()
		h.log.Debug().Err(err).Str("conn", c.id).Msg("write failed")
	}
}

// Connections reports the number of registered connections. Safe from any goroutine.
func (h *Hub) Connections() int { return int(h.conns.Load()) }

// Ready reports whether the loop is running and the pool accepts frames.
func (h *Hub) Ready() bool {
	return h.running.Load() && h.pool.State() == pipeline.StateRunning
}

// Status combines pool and connection state for /status.
func (h *Hub) Status() types.StatusResponse {
	st := h.pool.Status()
	st.Connections = h.Connections()
	st.UptimeSeconds = int64(time.Since(h.started).Seconds())
	st.ServerTimeUnix = time.Now().Unix()
	return st
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} { return h.done }
