package hub

import (
	"time"

	"github.com/gorilla/websocket"
)

// evictIdle closes and removes connections idle for longer than IdleTimeout.
func (h *Hub) evictIdle(now time.Time) {
	for _, c := range h.reg.Idle(now, h.cfg.IdleTimeout) {
		h.reg.Remove(c.id)
		h.conns.Store(int64(h.reg.Len()))
		connectionsGauge.Dec()
		evictionsTotal.Inc()
		c.close(websocket.CloseGoingAway, "idle timeout", h.cfg.WriteTimeout)
		h.log.Info().Str("conn", c.id).Dur("idle", now.Sub(c.lastActive)).Msg("closed inactive connection")
	}
}
