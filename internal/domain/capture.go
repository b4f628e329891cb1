package domain

// CaptureRequest asks the viewer to render one sequence into a directory the
// caller owns. The viewer writes the snapshot files itself; the runner only
// reports how the process behaved.
type CaptureRequest struct {
	SeqPath string
	OutDir  string

	// TimeRangeMS is the "start~end" window passed via --time-range.
	// Empty means the flag is omitted (trajectory-only whole-sequence runs).
	TimeRangeMS   string
	WholeSequence bool
}

// CaptureResult is the observable outcome of one viewer invocation.
type CaptureResult struct {
	ExitCode   int
	Stdout     string
	Stderr     string
	DurationMS int64
	TimedOut   bool
}

// PerfSample is one zoom-timing measurement taken from the viewer's stdout.
type PerfSample struct {
	ZoomMS   *float64
	ExitCode int
	Stdout   string
	Stderr   string
}

// LaunchSpec describes an interactive GUI launch: pass-through viewer options
// followed by an optional sequence file.
type LaunchSpec struct {
	Options []string
	SeqPath string
}
