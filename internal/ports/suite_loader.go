package ports

import "github.com/seqeyes/seqcheck/internal/domain"

// SuiteLoader loads target suites from a source (e.g., filesystem).
type SuiteLoader interface {
	LoadSuite(path string) (domain.Suite, error)
	ListSuites(root string) ([]domain.SuiteRef, error)
}
