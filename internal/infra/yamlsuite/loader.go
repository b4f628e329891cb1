package yamlsuite

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/ports"
	"gopkg.in/yaml.v3"
)

type Loader struct {
	suitesDir string
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{suitesDir: "suites"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithSuitesDir(dir string) Option {
	return func(l *Loader) { l.suitesDir = dir }
}

var _ ports.SuiteLoader = (*Loader)(nil)

func (l *Loader) LoadSuite(path string) (domain.Suite, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Suite{}, &domain.OpError{
			Op:   "yamlsuite.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var ys yamlSuite
	if err := yaml.Unmarshal(b, &ys); err != nil {
		return domain.Suite{}, &domain.OpError{
			Op:   "yamlsuite.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, ys)
}

func (l *Loader) ListSuites(root string) ([]domain.SuiteRef, error) {
	dir := filepath.Join(root, l.suitesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlsuite.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.SuiteRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		p := filepath.Join(dir, name)
		n, _ := readSuiteName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}

		refs = append(refs, domain.SuiteRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readSuiteName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

// Shared visual targets format: a "targets" list whose items carry exactly
// seqname and seq_diagram_time_range_ms.
type yamlSuite struct {
	Name    string       `yaml:"name"`
	Targets []yamlTarget `yaml:"targets"`
}

type yamlTarget struct {
	SeqName     string `yaml:"seqname"`
	TimeRangeMS string `yaml:"seq_diagram_time_range_ms"`
}

func mapAndValidate(path string, ys yamlSuite) (domain.Suite, error) {
	name := strings.TrimSpace(ys.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	suite := domain.Suite{
		Name:    name,
		Targets: make([]domain.TargetSpec, 0, len(ys.Targets)),
	}

	if len(ys.Targets) == 0 {
		return domain.Suite{}, invalidField(path, "targets", "at least one target is required")
	}

	for i, t := range ys.Targets {
		fieldPrefix := fmt.Sprintf("targets[%d]", i)

		seqName := strings.TrimSpace(t.SeqName)
		if seqName == "" {
			return domain.Suite{}, invalidField(path, fieldPrefix+".seqname", "seqname is required")
		}

		timeRange := strings.TrimSpace(t.TimeRangeMS)
		if timeRange == "" {
			return domain.Suite{}, invalidField(path, fieldPrefix+".seq_diagram_time_range_ms", "time range is required")
		}
		if err := validateTimeRange(timeRange); err != nil {
			return domain.Suite{}, invalidField(path, fieldPrefix+".seq_diagram_time_range_ms", err.Error())
		}

		suite.Targets = append(suite.Targets, domain.TargetSpec{
			Name:        seqName,
			TimeRangeMS: timeRange,
		})
	}

	return suite, nil
}

// validateTimeRange checks the "start~end" shape the viewer expects.
func validateTimeRange(s string) error {
	parts := strings.Split(s, "~")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return fmt.Errorf("expected \"start~end\", got %q", s)
	}
	return nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlsuite.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s", field, msg),
	}
}
