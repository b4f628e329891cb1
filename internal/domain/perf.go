package domain

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"
)

// PerfEntry is one sequence's aggregated zoom-timing measurement, shaped for
// the flat JSON result records CI consumes.
type PerfEntry struct {
	File       string    `json:"file"`
	ZoomMS     *float64  `json:"zoom_ms"`
	Exit       int       `json:"exit"`
	ExitHex    string    `json:"exit_hex,omitempty"`
	ExitReason string    `json:"exit_reason,omitempty"`
	Runs       []float64 `json:"runs"`
}

// PerfReport aggregates all entries of one perf run.
type PerfReport struct {
	Timestamp time.Time   `json:"timestamp"`
	Exe       string      `json:"exe"`
	Entries   []PerfEntry `json:"entries"`
}

// PerfRegression reports a file whose median exceeded the allowed delta over
// its baseline.
type PerfRegression struct {
	File       string
	BaselineMS float64
	CurrentMS  float64
	DeltaMS    float64
	AllowedMS  float64
}

func (r PerfRegression) String() string {
	return fmt.Sprintf("%s: %.2f -> %.2f ms (+%.2f ms > %.2f ms)",
		r.File, r.BaselineMS, r.CurrentMS, r.DeltaMS, r.AllowedMS)
}

// Median returns the median of xs without mutating it. Zero for empty input.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// ComparePerf matches current entries to baseline entries by base filename
// and reports regressions. thresholdMS overrides the default allowance of
// 10% of the baseline value. Entries missing on either side are ignored.
func ComparePerf(baseline, current PerfReport, thresholdMS *float64) []PerfRegression {
	base := make(map[string]*float64, len(baseline.Entries))
	for _, e := range baseline.Entries {
		base[filepath.Base(e.File)] = e.ZoomMS
	}

	var out []PerfRegression
	for _, e := range current.Entries {
		name := filepath.Base(e.File)
		b, ok := base[name]
		if !ok || b == nil || e.ZoomMS == nil {
			continue
		}

		allowed := 0.1 * *b
		if thresholdMS != nil {
			allowed = *thresholdMS
		}

		delta := *e.ZoomMS - *b
		if delta > allowed {
			out = append(out, PerfRegression{
				File:       name,
				BaselineMS: *b,
				CurrentMS:  *e.ZoomMS,
				DeltaMS:    delta,
				AllowedMS:  allowed,
			})
		}
	}
	return out
}

// ntStatusReasons covers the NTSTATUS crash codes worth naming in reports.
var ntStatusReasons = map[uint32]string{
	0xC0000005: "Access Violation",
	0xC0000135: "DLL Not Found",
	0xC0000139: "Entry Point Not Found",
	0xC0000142: "DLL Initialization Failed",
	0xC00000FD: "Stack Overflow",
	0xC0000409: "Stack Buffer Overrun",
	0xC000001D: "Illegal Instruction",
}

// DecodeNTStatus maps a Windows NTSTATUS exit code to a hex string and a
// human-readable reason. ok is false for codes outside the error range;
// callers gate on runtime.GOOS themselves.
func DecodeNTStatus(code int) (hex string, reason string, ok bool) {
	u := uint32(code)
	if u < 0xC0000000 {
		return "", "", false
	}
	hex = fmt.Sprintf("0x%08X", u)
	reason, known := ntStatusReasons[u]
	if !known {
		reason = "Unknown NTSTATUS"
	}
	return hex, reason, true
}
