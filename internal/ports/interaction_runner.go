package ports

import "context"

// InteractionRunner executes the zoom/pan behavior test binary against one
// sequence file and reports its exit code.
type InteractionRunner interface {
	RunInteraction(ctx context.Context, seqPath string) (exitCode int, err error)
}
