package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"ocrstream/internal/httpapi"
	"ocrstream/internal/hub"
	"ocrstream/internal/pipeline"
)

// echoRecognizer reports one fixed line per frame, sized to the image.
func echoRecognizer(pipeline.Settings) (pipeline.Recognizer, error) {
	return pipeline.RecognizeFunc(func(img image.Image) ([]pipeline.Detection, error) {
		b := img.Bounds()
		return []pipeline.Detection{{
			Polygon: []pipeline.Point{
				{X: 0, Y: 0}, {X: float64(b.Dx()), Y: 0},
				{X: float64(b.Dx()), Y: float64(b.Dy())}, {X: 0, Y: float64(b.Dy())},
			},
			Text:       "hello",
			Confidence: 0.9,
		}}, nil
	}), nil
}

type stack struct {
	pool   *pipeline.Pool
	hub    *hub.Hub
	srv    *httptest.Server
	cancel context.CancelFunc
}

// newStack wires pool, hub and HTTP mux the way ocrstreamd does.
func newStack(t *testing.T, pcfg pipeline.PoolConfig, s pipeline.Settings, hcfg hub.Config) *stack {
	t.Helper()
	if pcfg.Recognizers == nil {
		pcfg.Recognizers = echoRecognizer
	}
	pool := pipeline.NewPool(pcfg)
	if err := pool.Start(s); err != nil {
		t.Fatalf("start pool: %v", err)
	}
	h := hub.New(pool, hcfg)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = h.Run(ctx) }()
	srv := httptest.NewServer(httpapi.NewMux(h))
	st := &stack{pool: pool, hub: h, srv: srv, cancel: cancel}
	t.Cleanup(func() {
		cancel()
		<-h.Done()
		srv.Close()
		pool.Shutdown()
	})
	return st
}

func (s *stack) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = ws.Close() })
	if m := readMsg(t, ws); m["type"] != "init" {
		t.Fatalf("first message should be init: %v", m)
	}
	return ws
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
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

func readType(t *testing.T, ws *websocket.Conn, typ string) map[string]any {
	t.Helper()
	for i := 0; i < 50; i++ {
		if m := readMsg(t, ws); m["type"] == typ {
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

func writeBinary(t *testing.T, ws *websocket.Conn, header string, img []byte) {
	t.Helper()
	if err := ws.WriteMessage(websocket.BinaryMessage, append([]byte(header), img...)); err != nil {
		t.Fatalf("write frame: %v", err)
	}
}

func writeText(t *testing.T, ws *websocket.Conn, s string) {
	t.Helper()
	if err := ws.WriteMessage(websocket.TextMessage, []byte(s)); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met within %v", d)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
