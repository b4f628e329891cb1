package ports

import "github.com/seqeyes/seqcheck/internal/domain"

// ViewerLauncher starts the GUI viewer detached from the harness process.
type ViewerLauncher interface {
	Launch(spec domain.LaunchSpec) error
}
