// This package contains the main [Pacer] interface and its implementations.
package pace

import "context"

// Pacer decides how long a worker waits before each of its iterations.
//
// Implementations are not considered thread-safe and each instance is used by a single worker.
type Pacer interface {
	// Wait blocks until the next iteration may start or the context is cancelled.
	//
	// The first call never waits. Returns false if the context was cancelled, in which case
	// the worker must stop.
	Wait(ctx context.Context) bool
	// Derive returns a new Pacer instance with the same settings for another worker.
	//
	// The returned pacer maintains its own internal state independent of the original.
	Derive() Pacer
}
