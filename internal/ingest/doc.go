// Package ingest parses inbound websocket messages.
//
// Binary messages are frame packets: a JSON metadata object immediately
// followed by encoded image bytes. Text messages are JSON objects with a
// "type" of frame, config or ping. Parse yields typed events; Ingestor turns
// frame events into decoded pipeline frames.
package ingest
