package ingest

import (
	"encoding/json"
	"fmt"

	"ocrstream/pkg/types"
)

// Parse turns one inbound message into an Event. Every error it returns is a
// *ProtocolError whose text is suitable for an "error" reply.
func Parse(kind MessageKind, data []byte) (Event, error) {
	if kind == BinaryMessage {
		return parseBinary(data)
	}
	return parseText(data)
}

func parseBinary(data []byte) (Event, error) {
	meta, payload, err := SplitPacket(data)
	if err != nil {
		return nil, err
	}
	var hdr types.FrameHeader
	if err := json.Unmarshal(meta, &hdr); err != nil {
		return nil, binaryError("Cannot parse metadata: %v", err)
	}
	return FrameEvent{Header: hdr, Payload: payload}, nil
}

func parseText(data []byte) (Event, error) {
	var in types.Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, &ProtocolError{Message: "Invalid JSON message", Err: err}
	}
	switch in.Type {
	case types.MsgFrame:
		legacy := in.Frame
		if legacy == nil {
			legacy = json.RawMessage("null")
		}
		return FrameEvent{Header: in.FrameHeader, Legacy: legacy}, nil
	case types.MsgConfig:
		var upd types.ConfigUpdate
		if in.Config != nil {
			upd = *in.Config
		}
		return ConfigEvent{Update: upd}, nil
	case types.MsgPing:
		return PingEvent{}, nil
	default:
		return nil, &ProtocolError{Message: fmt.Sprintf("Unknown message type: %s", in.Type)}
	}
}
