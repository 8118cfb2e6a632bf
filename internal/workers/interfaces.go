// Package workers runs the background maintenance jobs of the note service.
//
// It defines the Worker interface and a Workers aggregate that starts all
// configured workers and waits for them to stop.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is done.
type Worker interface {
	Run(ctx context.Context)
}
