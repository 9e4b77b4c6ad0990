// Package client implements the kioskctl commands on top of
// [adapter.ServerAdapter]: one-shot commands, an interactive shell that keeps
// the session token between commands, and the kiosk picker.
package client
