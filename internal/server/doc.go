// Package server runs the kiosk-gate HTTP transport, including startup,
// signal handling and graceful shutdown.
package server
