package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"ocrstream/internal/pipeline"
)

func fixedRecognizer(pipeline.Settings) (pipeline.Recognizer, error) {
	return pipeline.RecognizeFunc(func(img image.Image) ([]pipeline.Detection, error) {
		return []pipeline.Detection{{
			Polygon:    []pipeline.Point{{X: 5, Y: 5}, {X: 50, Y: 5}, {X: 50, Y: 30}, {X: 5, Y: 30}},
			Text:       "total",
			Confidence: 0.8,
		}}, nil
	}), nil
}

type testEnv struct {
	pool *pipeline.Pool
	pub  *pipeline.MemoryPublisher
	hub  *Hub
	srv  *httptest.Server
	stop context.CancelFunc
}

func newTestEnv(t *testing.T, pcfg pipeline.PoolConfig, hcfg Config) *testEnv {
	t.Helper()
	pub := pipeline.NewMemoryPublisher()
	if pcfg.Recognizers == nil {
		pcfg.Recognizers = fixedRecognizer
	}
	pcfg.Publisher = pub
	pool := pipeline.NewPool(pcfg)
	if err := pool.Start(pipeline.Settings{Language: "eng", Workers: 1}); err != nil {
		t.Fatalf("start pool: %v", err)
	}
	h := New(pool, hcfg)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = h.Run(ctx) }()
	srv := httptest.NewServer(h)
	env := &testEnv{pool: pool, pub: pub, hub: h, srv: srv, stop: cancel}
	t.Cleanup(func() {
		cancel()
		<-h.Done()
		srv.Close()
		pool.Shutdown()
	})
	return env
}

// dial connects and consumes the init message.
func (e *testEnv) dial(t *testing.T) (*websocket.Conn, map[string]any) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = ws.Close() })
	init := readType(t, ws, "init")
	return ws, init
}

func readMsg(t *testing.T, ws *websocket.Conn) map[string]any {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	return m
}

// readType skips messages until one of type typ arrives.
func readType(t *testing.T, ws *websocket.Conn, typ string) map[string]any {
	t.Helper()
	for i := 0; i < 50; i++ {
		m := readMsg(t, ws)
		if m["type"] == typ {
			return m
		}
	}
	t.Fatalf("no %q message received", typ)
	return nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png: %v", err)
	}
	return buf.Bytes()
}

func sendFrame(t *testing.T, ws *websocket.Conn, header string, img []byte) {
	t.Helper()
	if err := ws.WriteMessage(websocket.BinaryMessage, append([]byte(header), img...)); err != nil {
		t.Fatalf("write frame: %v", err)
	}
}

func sendJSON(t *testing.T, ws *websocket.Conn, v string) {
	t.Helper()
	if err := ws.WriteMessage(websocket.TextMessage, []byte(v)); err != nil {
		t.Fatalf("write: %v", err)
	}
}
