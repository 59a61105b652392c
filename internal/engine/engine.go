// Package engine abstracts the container engine: building an image from a
// tar build context and running a container from CLI-style flags.
package engine

import (
	"context"
	"io"
)

// Engine is the container engine capability consumed by the manager.
type Engine interface {
	// Build submits a tar build context and returns the engine's
	// streaming build log (JSON lines). The caller owns the closer.
	Build(ctx context.Context, buildContext io.Reader, tags []string) (io.ReadCloser, error)

	// Run launches a container with the given `docker run` flags,
	// inheriting the caller's stdio, and returns once it exits. The
	// returned error carries the container's exit status when non-zero.
	Run(ctx context.Context, args []string) error
}
