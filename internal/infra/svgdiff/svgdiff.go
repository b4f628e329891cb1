// Package svgdiff compares SVG snapshots as normalized text, so tiny
// floating-point rendering jitter does not produce false failures and no
// rasterizer is needed.
package svgdiff

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/seqeyes/seqcheck/internal/domain"
)

var (
	// Generation timestamps embedded by SVG writers.
	dateRe = regexp.MustCompile(`(?s)<dc:date>.*?</dc:date>`)

	floatRe = regexp.MustCompile(`-?\d+\.\d+`)
)

// Normalize rounds every floating-point literal to 2 decimal places and
// strips the <dc:date> metadata element.
func Normalize(content string) string {
	content = dateRe.ReplaceAllString(content, "")

	return floatRe.ReplaceAllStringFunc(content, func(m string) string {
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return m
		}
		return strconv.FormatFloat(f, 'f', 2, 64)
	})
}

// NormalizeFile reads and normalizes an SVG file.
func NormalizeFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &domain.OpError{
			Op:   "svgdiff.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return Normalize(string(b)), nil
}

// Result describes how two normalized SVG texts differ.
type Result struct {
	Equal      bool
	DiffLines  int
	TotalLines int
	DiffRatio  float64
}

func (r Result) String() string {
	if r.Equal {
		return "svg texts match exactly"
	}
	return fmt.Sprintf("%d/%d lines differ (%.2f%%)", r.DiffLines, r.TotalLines, r.DiffRatio*100)
}

// Compare diffs two normalized texts line by line. Extra lines on either
// side all count as differing.
func Compare(baseline, snapshot string) Result {
	if baseline == snapshot {
		return Result{Equal: true}
	}

	b := strings.Split(baseline, "\n")
	s := strings.Split(snapshot, "\n")

	n := len(b)
	if len(s) < n {
		n = len(s)
	}

	diff := 0
	for i := 0; i < n; i++ {
		if b[i] != s[i] {
			diff++
		}
	}
	diff += len(b) - n + len(s) - n

	total := len(b)
	if len(s) > total {
		total = len(s)
	}
	if total == 0 {
		total = 1
	}

	return Result{
		DiffLines:  diff,
		TotalLines: total,
		DiffRatio:  float64(diff) / float64(total),
	}
}

// CompareFiles normalizes and compares two SVG files on disk.
func CompareFiles(baselinePath, snapshotPath string) (Result, error) {
	b, err := NormalizeFile(baselinePath)
	if err != nil {
		return Result{}, err
	}
	s, err := NormalizeFile(snapshotPath)
	if err != nil {
		return Result{}, err
	}
	return Compare(b, s), nil
}
