package worker

import (
	"context"
)

// Worker - common interface for background workers
type Worker interface {
	// Start runs the worker loop until stopped or the context ends
	Start(ctx context.Context) error

	// Stop signals the worker to shut down
	Stop() error

	// Name returns the worker name
	Name() string
}
