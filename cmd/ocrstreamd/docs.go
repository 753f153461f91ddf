package main

// General API documentation for swaggo. Generate with `swag init -g cmd/ocrstreamd/docs.go`.
//
// @title           ocrstream API
// @version         1.0
// @description     Streaming OCR server. Clients push frames over /ws and receive ocr_result broadcasts; the HTTP routes report pool status and recognizer health.
//
// @contact.name   ocrstream maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
