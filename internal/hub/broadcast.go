package hub

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"ocrstream/pkg/types"
)

// broadcast drains every pending result and sends each to all connections.
// Results produced while nobody is connected are discarded.
func (h *Hub) broadcast() {
	results := h.pool.Results().DrainAll()
	for _, r := range results {
		if h.reg.Len() == 0 {
			continue
		}
		b, err := json.Marshal(types.OCRResultMessage{Type: types.MsgOCRResult, Data: r.Wire()})
		if err != nil {
			h.log.Error().Err(err).Int64("frame_id", r.FrameID).Msg("encode result")
			continue
		}
		pm, err := websocket.NewPreparedMessage(websocket.TextMessage, b)
		if err != nil {
			h.log.Error().Err(err).Int64("frame_id", r.FrameID).Msg("prepare result")
			continue
		}
		h.reg.Each(func(c *conn) {
			if err := c.writePrepared(pm, h.cfg.WriteTimeout); err != nil {
				deliveryErrorsTotal.Inc()
				h.log.Debug().Err(err).Str("conn", c.id).Int64("frame_id", r.FrameID).Msg("deliver result")
			}
		})
	}
}
