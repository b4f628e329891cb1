package domain

// Config represents the seqcheck configuration loaded from seqcheck.yaml.
type Config struct {
	Defaults DefaultsConfig
	Paths    PathsConfig
	Capture  CaptureConfig
	Compare  CompareConfig
	Perf     PerfConfig
	Interact InteractConfig
}

type DefaultsConfig struct {
	Suite  string
	Format SnapshotFormat
}

type PathsConfig struct {
	BinDir       string
	SeqDir       string
	SuitesDir    string
	BaselinesDir string
	SnapshotsDir string
	RunsDir      string
}

type CaptureConfig struct {
	TimeoutSec int

	// ExtraPath is prepended to PATH for viewer processes, so shared
	// libraries next to a non-installed Qt build can be found.
	ExtraPath string
}

type CompareConfig struct {
	SVGLineThreshold  float64
	PNGPixelTolerance int
	PNGMaxDiffRatio   float64
}

type PerfConfig struct {
	Repeat       int
	Warmup       bool
	ThresholdMS  *float64 // nil means 10% of baseline
	BaselineFile string
}

type InteractConfig struct {
	Exe string
}

// WorkspaceSpec describes a workspace to initialize.
type WorkspaceSpec struct {
	Root string
}

// DefaultConfig provides sane defaults if seqcheck.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			Suite:  "visual_targets",
			Format: FormatSVG,
		},
		Paths: PathsConfig{
			BinDir:       "build/Release",
			SeqDir:       "seq_files",
			SuitesDir:    "suites",
			BaselinesDir: "baselines",
			SnapshotsDir: "snapshots",
			RunsDir:      "runs",
		},
		Capture: CaptureConfig{
			TimeoutSec: 120,
		},
		Compare: CompareConfig{
			SVGLineThreshold:  0.01,
			PNGPixelTolerance: 0,
			PNGMaxDiffRatio:   0,
		},
		Perf: PerfConfig{
			Repeat:       1,
			BaselineFile: "perf_baseline.json",
		},
		Interact: InteractConfig{
			Exe: "TimeSliderSyncTest",
		},
	}
}
