// Package hub is the websocket side of the server: connection registry,
// message dispatch, configuration changes, result broadcast and idle
// eviction, all driven from one loop goroutine.
package hub
