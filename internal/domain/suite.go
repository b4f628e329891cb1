package domain

// SnapshotFormat selects the artifact type the viewer is asked to capture.
type SnapshotFormat string

const (
	FormatSVG SnapshotFormat = "svg"
	FormatPNG SnapshotFormat = "png"
)

// TargetSpec names one sequence under test together with the time range (in
// milliseconds, "start~end") used for its sequence-diagram capture.
type TargetSpec struct {
	Name        string
	TimeRangeMS string
}

// Suite groups visual/perf targets under one logical unit (Git-friendly).
type Suite struct {
	Name    string
	Targets []TargetSpec
}

// SuiteRef is a lightweight reference to a suite file on disk.
type SuiteRef struct {
	Name string
	Path string
}

// SnapshotNames returns the file names the viewer writes for a sequence:
// "<base>_seq.<ext>" for the timing diagram and "<base>_traj.<ext>" for the
// k-space trajectory.
func SnapshotNames(base string, format SnapshotFormat) (seq string, traj string) {
	ext := string(format)
	if ext == "" {
		ext = string(FormatSVG)
	}
	return base + "_seq." + ext, base + "_traj." + ext
}
