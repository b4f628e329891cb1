package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/ports"
)

type ValidateSuite struct {
	suites ports.SuiteLoader

	root string
	cfg  domain.Config
}

func NewValidateSuite(sl ports.SuiteLoader, root string, cfg domain.Config) *ValidateSuite {
	return &ValidateSuite{suites: sl, root: root, cfg: cfg}
}

// Execute checks that the suite parses and that every referenced sequence
// file exists, without launching any viewer process.
func (uc *ValidateSuite) Execute(ctx context.Context, suitePath string) error {
	suite, err := uc.suites.LoadSuite(suitePath)
	if err != nil {
		return err
	}

	var missing []string
	for _, target := range suite.Targets {
		if err := ctx.Err(); err != nil {
			return err
		}

		seqPath := filepath.Join(uc.root, uc.cfg.Paths.SeqDir, target.Name)
		if _, err := os.Stat(seqPath); err != nil {
			missing = append(missing, target.Name)
		}
	}

	if len(missing) > 0 {
		return &domain.OpError{
			Op:   "usecase.validate",
			Kind: domain.KindNotFound,
			Path: suitePath,
			Err:  fmt.Errorf("missing sequence files: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}
