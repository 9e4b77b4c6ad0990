package server

// Server defines the lifecycle contract of the transport server.
//
// [RunServer] blocks until a stop signal arrives or the listener fails;
// [Shutdown] drains in-flight requests and runs the registered shutdown hooks.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
