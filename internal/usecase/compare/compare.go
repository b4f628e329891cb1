// Package compare turns baseline/snapshot file pairs into check results.
// A missing baseline skips the check (nothing to compare against yet); a
// missing snapshot fails it (the viewer was supposed to produce one).
package compare

import (
	"fmt"
	"os"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/infra/pngdiff"
	"github.com/seqeyes/seqcheck/internal/infra/svgdiff"
)

// SVGPair compares a normalized SVG snapshot against its baseline using a
// line-diff ratio threshold.
func SVGPair(name, baselinePath, snapshotPath string, threshold float64) domain.CheckResult {
	if _, err := os.Stat(baselinePath); err != nil {
		return domain.CheckResult{
			Name:    name,
			Status:  domain.CheckSkip,
			Message: "baseline missing: " + baselinePath,
		}
	}
	if _, err := os.Stat(snapshotPath); err != nil {
		return domain.CheckResult{
			Name:    name,
			Status:  domain.CheckFail,
			Message: "snapshot missing: " + snapshotPath,
		}
	}

	res, err := svgdiff.CompareFiles(baselinePath, snapshotPath)
	if err != nil {
		return domain.CheckResult{
			Name:    name,
			Status:  domain.CheckFail,
			Message: err.Error(),
		}
	}

	if res.DiffRatio > threshold {
		return domain.CheckResult{
			Name:    name,
			Status:  domain.CheckFail,
			Message: fmt.Sprintf("%s (threshold %.4f)", res, threshold),
		}
	}
	return domain.CheckResult{Name: name, Status: domain.CheckPass, Message: res.String()}
}

// PNGPair compares a PNG snapshot against its baseline pixel by pixel. A diff
// image is written next to the snapshot when pixels differ.
func PNGPair(name, baselinePath, snapshotPath, diffOut string, tolerance int, maxDiffRatio float64) domain.CheckResult {
	if _, err := os.Stat(baselinePath); err != nil {
		return domain.CheckResult{
			Name:    name,
			Status:  domain.CheckSkip,
			Message: "baseline missing: " + baselinePath,
		}
	}
	if _, err := os.Stat(snapshotPath); err != nil {
		return domain.CheckResult{
			Name:    name,
			Status:  domain.CheckFail,
			Message: "snapshot missing: " + snapshotPath,
		}
	}

	res, err := pngdiff.CompareFiles(baselinePath, snapshotPath, diffOut, tolerance)
	if err != nil {
		return domain.CheckResult{
			Name:    name,
			Status:  domain.CheckFail,
			Message: err.Error(),
		}
	}

	if res.SizeMismatch {
		return domain.CheckResult{
			Name:    name,
			Status:  domain.CheckFail,
			Message: res.String(),
		}
	}

	ratio := 0.0
	if res.TotalPixels > 0 {
		ratio = float64(res.DiffPixels) / float64(res.TotalPixels)
	}
	if ratio > maxDiffRatio {
		return domain.CheckResult{
			Name:    name,
			Status:  domain.CheckFail,
			Message: fmt.Sprintf("%s (max ratio %.4f)", res, maxDiffRatio),
		}
	}
	return domain.CheckResult{Name: name, Status: domain.CheckPass, Message: res.String()}
}
