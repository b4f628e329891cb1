package tui

import "github.com/seqeyes/seqcheck/internal/domain"

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type suitesLoadedMsg struct {
	root string
	refs []domain.SuiteRef
	err  error
}

type runnerDoneMsg struct {
	kind    domain.RunKind
	summary string
	failed  int
	err     error
}
