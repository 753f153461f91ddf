package ingest

import (
	"bytes"
	"unicode/utf8"
)

// SplitPacket separates a binary frame packet into its JSON metadata and the
// encoded image that follows it. There is no length prefix:
//
//   - valid UTF-8 packets: metadata is everything up to and including the first '}'
//   - otherwise: metadata is the byte range from the first '{' to the first '}'
//
// The image payload is everything after that '}'. Metadata is not validated here.
func SplitPacket(data []byte) (meta, payload []byte, err error) {
	if utf8.Valid(data) {
		end := bytes.IndexByte(data, '}')
		if end < 0 {
			return nil, nil, binaryError("Invalid metadata format")
		}
		return data[:end+1], data[end+1:], nil
	}
	start := bytes.IndexByte(data, '{')
	end := bytes.IndexByte(data, '}')
	if start < 0 || end < 0 || end < start {
		return nil, nil, binaryError("Cannot locate JSON metadata")
	}
	return data[start : end+1], data[end+1:], nil
}
