package ports

import "github.com/seqeyes/seqcheck/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
