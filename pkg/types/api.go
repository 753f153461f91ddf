package types

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: pipeline not running
	Error string `json:"error" example:"pipeline not running"`
	// HTTP status code.
	// example: 503
	Code int `json:"code" example:"503"`
}

// LanguagesResponse wraps the list of recognition languages returned by GET /languages.
type LanguagesResponse struct {
	// Directory that was scanned.
	// example: /usr/share/tesseract-ocr/5/tessdata
	Dir string `json:"dir" example:"/usr/share/tesseract-ocr/5/tessdata"`
	// Installed languages.
	Languages []Language `json:"languages"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Worker pool lifecycle state (running, draining, stopped).
	// example: running
	State string `json:"state" example:"running"`
	// Number of live worker goroutines.
	// example: 4
	Workers int `json:"workers" example:"4"`
	// Frames currently waiting in the frame queue.
	// example: 3
	QueueLen int `json:"queue_len" example:"3"`
	// Frame queue capacity; frames beyond it are dropped.
	// example: 10
	QueueCapacity int `json:"queue_capacity" example:"10"`
	// Results produced but not yet broadcast.
	// example: 0
	PendingResults int `json:"pending_results" example:"0"`
	// Registered websocket connections.
	// example: 2
	Connections int `json:"connections" example:"2"`
	// Number of drain+restart cycles since start.
	// example: 1
	Restarts uint64 `json:"restarts" example:"1"`
	// Worker pool generation; bumped on each restart.
	// example: 2
	Generation uint64 `json:"generation" example:"2"`
	// Current recognition settings.
	Settings OCRSettings `json:"ocr_settings"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
