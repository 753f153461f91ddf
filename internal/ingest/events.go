package ingest

import (
	"encoding/json"

	"ocrstream/pkg/types"
)

// MessageKind distinguishes the two message shapes carried by a connection.
type MessageKind int

const (
	TextMessage MessageKind = iota + 1
	BinaryMessage
)

// Event is a parsed inbound message: FrameEvent, ConfigEvent or PingEvent.
type Event interface {
	isEvent()
}

// FrameEvent is a frame submission. Exactly one of Payload (binary packet)
// or Legacy (text "frame" field) is set.
type FrameEvent struct {
	Header  types.FrameHeader
	Payload []byte
	Legacy  json.RawMessage
}

// ConfigEvent carries a settings/ROI update.
type ConfigEvent struct {
	Update types.ConfigUpdate
}

// PingEvent is a liveness probe.
type PingEvent struct{}

func (FrameEvent) isEvent()  {}
func (ConfigEvent) isEvent() {}
func (PingEvent) isEvent()   {}
