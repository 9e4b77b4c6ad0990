// Package http implements the HTTP transport of the kiosk-gate server.
//
// It exposes the signup, login, session and profile administration
// operations to the kiosk UI shell as JSON endpoints. Request tracing,
// access logging, device identification, per-device rate limiting and
// bearer authentication are handled here before requests reach the
// service layer.
package http
