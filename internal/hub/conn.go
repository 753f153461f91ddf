package hub

import (
	"time"

	"github.com/gorilla/websocket"
)

// conn is one websocket client. Only the hub loop writes to ws or mutates
// lastActive; the read pump only reads.
type conn struct {
	id         string
	remote     string
	ws         *websocket.Conn
	lastActive time.Time
}

func (c *conn) writeJSON(v any, timeout time.Duration) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(timeout))
	return c.ws.WriteJSON(v)
}

func (c *conn) writePrepared(pm *websocket.PreparedMessage, timeout time.Duration) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(timeout))
	return c.ws.WritePreparedMessage(pm)
}

// close sends a close frame with reason, then closes the socket.
func (c *conn) close(code int, reason string, timeout time.Duration) {
	_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(timeout))
	_ = c.ws.Close()
}
