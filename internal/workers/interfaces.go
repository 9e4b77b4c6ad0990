// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that starts every
// worker on its own goroutine and stops them together.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is done. Stopping the loop is the only cancellation
// a worker has to support.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Name() string { return "my-worker" }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Name() string
	Run(ctx context.Context)
}
