package ports

import (
	"context"

	"github.com/seqeyes/seqcheck/internal/domain"
)

// PerfRunner takes a single zoom-timing measurement for one sequence file.
type PerfRunner interface {
	MeasureZoom(ctx context.Context, seqPath string) (domain.PerfSample, error)
}
