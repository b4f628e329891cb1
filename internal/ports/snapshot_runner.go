package ports

import (
	"context"

	"github.com/seqeyes/seqcheck/internal/domain"
)

// SnapshotRunner drives one headless viewer invocation that renders snapshot
// files into the request's output directory.
type SnapshotRunner interface {
	Capture(ctx context.Context, req domain.CaptureRequest) (domain.CaptureResult, error)
}
