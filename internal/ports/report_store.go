package ports

import "github.com/seqeyes/seqcheck/internal/domain"

// ReportStore persists run artifacts for CI and human consumption.
type ReportStore interface {
	SaveRun(run domain.RunArtifact) (id string, err error)
}
