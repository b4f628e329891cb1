package workspacefinder

import (
	"os"
	"path/filepath"

	"github.com/seqeyes/seqcheck/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads seqcheck.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, "seqcheck.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	sc := y.Seqcheck

	if sc.Defaults.Suite != "" {
		cfg.Defaults.Suite = sc.Defaults.Suite
	}
	if sc.Defaults.Format != "" {
		cfg.Defaults.Format = domain.SnapshotFormat(sc.Defaults.Format)
	}

	if sc.Paths.BinDir != "" {
		cfg.Paths.BinDir = sc.Paths.BinDir
	}
	if sc.Paths.SeqDir != "" {
		cfg.Paths.SeqDir = sc.Paths.SeqDir
	}
	if sc.Paths.SuitesDir != "" {
		cfg.Paths.SuitesDir = sc.Paths.SuitesDir
	}
	if sc.Paths.BaselinesDir != "" {
		cfg.Paths.BaselinesDir = sc.Paths.BaselinesDir
	}
	if sc.Paths.SnapshotsDir != "" {
		cfg.Paths.SnapshotsDir = sc.Paths.SnapshotsDir
	}
	if sc.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = sc.Paths.RunsDir
	}

	if sc.Capture.TimeoutSec != nil {
		cfg.Capture.TimeoutSec = *sc.Capture.TimeoutSec
	}
	if sc.Capture.ExtraPath != "" {
		cfg.Capture.ExtraPath = sc.Capture.ExtraPath
	}

	if sc.Compare.SVGLineThreshold != nil {
		cfg.Compare.SVGLineThreshold = *sc.Compare.SVGLineThreshold
	}
	if sc.Compare.PNGPixelTolerance != nil {
		cfg.Compare.PNGPixelTolerance = *sc.Compare.PNGPixelTolerance
	}
	if sc.Compare.PNGMaxDiffRatio != nil {
		cfg.Compare.PNGMaxDiffRatio = *sc.Compare.PNGMaxDiffRatio
	}

	if sc.Perf.Repeat != nil {
		cfg.Perf.Repeat = *sc.Perf.Repeat
	}
	if sc.Perf.Warmup != nil {
		cfg.Perf.Warmup = *sc.Perf.Warmup
	}
	if sc.Perf.ThresholdMS != nil {
		cfg.Perf.ThresholdMS = sc.Perf.ThresholdMS
	}
	if sc.Perf.BaselineFile != "" {
		cfg.Perf.BaselineFile = sc.Perf.BaselineFile
	}

	if sc.Interact.Exe != "" {
		cfg.Interact.Exe = sc.Interact.Exe
	}

	return cfg, nil
}

type yamlConfig struct {
	Seqcheck struct {
		Defaults struct {
			Suite  string `yaml:"suite"`
			Format string `yaml:"format"`
		} `yaml:"defaults"`

		Paths struct {
			BinDir       string `yaml:"bin_dir"`
			SeqDir       string `yaml:"seq_dir"`
			SuitesDir    string `yaml:"suites_dir"`
			BaselinesDir string `yaml:"baselines_dir"`
			SnapshotsDir string `yaml:"snapshots_dir"`
			RunsDir      string `yaml:"runs_dir"`
		} `yaml:"paths"`

		Capture struct {
			TimeoutSec *int   `yaml:"timeout_sec"`
			ExtraPath  string `yaml:"extra_path"`
		} `yaml:"capture"`

		Compare struct {
			SVGLineThreshold  *float64 `yaml:"svg_line_threshold"`
			PNGPixelTolerance *int     `yaml:"png_pixel_tolerance"`
			PNGMaxDiffRatio   *float64 `yaml:"png_max_diff_ratio"`
		} `yaml:"compare"`

		Perf struct {
			Repeat       *int     `yaml:"repeat"`
			Warmup       *bool    `yaml:"warmup"`
			ThresholdMS  *float64 `yaml:"threshold_ms"`
			BaselineFile string   `yaml:"baseline_file"`
		} `yaml:"perf"`

		Interact struct {
			Exe string `yaml:"exe"`
		} `yaml:"interact"`
	} `yaml:"seqcheck"`
}
