package ingest

import (
	"strings"
	"testing"
)

func TestSplitPacket_UTF8(t *testing.T) {
	meta, payload, err := SplitPacket([]byte(`{"frame_id":1}abc`))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if string(meta) != `{"frame_id":1}` || string(payload) != "abc" {
		t.Fatalf("meta=%q payload=%q", meta, payload)
	}
}

func TestSplitPacket_BinaryScansBraces(t *testing.T) {
	data := append([]byte{0xff, 0xfe}, packet(`{"is_roi":false}`, []byte{0x89, 'P', 'N', 'G'})...)
	meta, payload, err := SplitPacket(data)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if string(meta) != `{"is_roi":false}` {
		t.Fatalf("meta=%q", meta)
	}
	if len(payload) != 4 || payload[0] != 0x89 {
		t.Fatalf("payload=%v", payload)
	}
}

func TestSplitPacket_Errors(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"utf8 without brace", []byte("hello"), "Invalid metadata format"},
		{"binary without braces", []byte{0xff, 0x00, 0x01}, "Cannot locate JSON metadata"},
		{"binary close before open", []byte{0xff, '}', 'x', '{'}, "Cannot locate JSON metadata"},
		{"empty", nil, "Invalid metadata format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := SplitPacket(tc.data)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !IsProtocolError(err) {
				t.Fatalf("want ProtocolError, got %T", err)
			}
			if !strings.HasPrefix(err.Error(), "Error processing binary message: ") || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("message: %q", err.Error())
			}
		})
	}
}
