package domain

import (
	"testing"
	"time"
)

func TestMedian(t *testing.T) {
	cases := []struct {
		name string
		in   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{42.5}, 42.5},
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Median(tc.in); got != tc.want {
				t.Fatalf("Median(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMedian_DoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_ = Median(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Fatalf("input mutated: %v", in)
	}
}

func ptr(f float64) *float64 { return &f }

func TestComparePerf_DefaultThresholdIsTenPercent(t *testing.T) {
	baseline := PerfReport{Entries: []PerfEntry{
		{File: "/old/path/epi.seq", ZoomMS: ptr(100)},
		{File: "/old/path/gre.seq", ZoomMS: ptr(50)},
	}}
	current := PerfReport{Timestamp: time.Now(), Entries: []PerfEntry{
		{File: "/new/path/epi.seq", ZoomMS: ptr(109)}, // within 10%
		{File: "/new/path/gre.seq", ZoomMS: ptr(56)},  // +6ms > 5ms allowance
	}}

	regs := ComparePerf(baseline, current, nil)
	if len(regs) != 1 {
		t.Fatalf("expected 1 regression, got %d: %v", len(regs), regs)
	}
	if regs[0].File != "gre.seq" {
		t.Fatalf("expected gre.seq, got %s", regs[0].File)
	}
	if regs[0].AllowedMS != 5 {
		t.Fatalf("expected allowance 5ms, got %v", regs[0].AllowedMS)
	}
}

func TestComparePerf_AbsoluteThreshold(t *testing.T) {
	baseline := PerfReport{Entries: []PerfEntry{
		{File: "epi.seq", ZoomMS: ptr(100)},
	}}
	current := PerfReport{Entries: []PerfEntry{
		{File: "epi.seq", ZoomMS: ptr(103)},
	}}

	if regs := ComparePerf(baseline, current, ptr(5)); len(regs) != 0 {
		t.Fatalf("expected no regression with 5ms threshold, got %v", regs)
	}
	regs := ComparePerf(baseline, current, ptr(2))
	if len(regs) != 1 {
		t.Fatalf("expected 1 regression with 2ms threshold, got %v", regs)
	}
	if regs[0].DeltaMS != 3 {
		t.Fatalf("expected delta 3ms, got %v", regs[0].DeltaMS)
	}
}

func TestComparePerf_SkipsUnmatchedAndCrashedEntries(t *testing.T) {
	baseline := PerfReport{Entries: []PerfEntry{
		{File: "a.seq", ZoomMS: ptr(10)},
		{File: "crashed.seq", ZoomMS: nil},
	}}
	current := PerfReport{Entries: []PerfEntry{
		{File: "crashed.seq", ZoomMS: ptr(100)},
		{File: "new.seq", ZoomMS: ptr(100)},
		{File: "a.seq", ZoomMS: nil},
	}}

	if regs := ComparePerf(baseline, current, nil); len(regs) != 0 {
		t.Fatalf("expected no regressions, got %v", regs)
	}
}

func TestDecodeNTStatus(t *testing.T) {
	hex, reason, ok := DecodeNTStatus(-1073741819) // 0xC0000005 as int32
	if !ok {
		t.Fatalf("expected ok for access violation code")
	}
	if hex != "0xC0000005" {
		t.Fatalf("expected 0xC0000005, got %s", hex)
	}
	if reason != "Access Violation" {
		t.Fatalf("expected Access Violation, got %s", reason)
	}

	if _, _, ok := DecodeNTStatus(1); ok {
		t.Fatalf("exit code 1 must not decode as NTSTATUS")
	}

	hex, reason, ok = DecodeNTStatus(int(uint32(0xC0FFEE00)))
	if !ok || hex != "0xC0FFEE00" || reason != "Unknown NTSTATUS" {
		t.Fatalf("unexpected decode: %s %s %v", hex, reason, ok)
	}
}
