// Package pngdiff compares PNG snapshots pixel by pixel with a per-channel
// tolerance and can emit a diff artifact highlighting the changed pixels.
package pngdiff

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/seqeyes/seqcheck/internal/domain"
)

// Result summarizes a pixel comparison.
type Result struct {
	Width       int
	Height      int
	TotalPixels int
	DiffPixels  int
	DiffRatio   float64
	MaxDelta    int

	// SizeMismatch is set when the two images have different bounds;
	// no pixels are compared in that case.
	SizeMismatch bool
}

func (r Result) String() string {
	if r.SizeMismatch {
		return "image dimensions differ"
	}
	if r.DiffPixels == 0 {
		return "images match"
	}
	return fmt.Sprintf("%d/%d pixels differ (%.4f%%), max channel delta %d",
		r.DiffPixels, r.TotalPixels, r.DiffRatio*100, r.MaxDelta)
}

// Compare walks both images. A pixel counts as differing when any channel
// delta exceeds tolerance (0 means exact match). diff, when non-nil, is an
// image with unchanged pixels dimmed and changed pixels painted red.
func Compare(baseline, snapshot image.Image, tolerance int) (Result, *image.RGBA) {
	bb := baseline.Bounds()
	sb := snapshot.Bounds()

	if bb.Dx() != sb.Dx() || bb.Dy() != sb.Dy() {
		return Result{
			Width:        bb.Dx(),
			Height:       bb.Dy(),
			SizeMismatch: true,
		}, nil
	}

	res := Result{
		Width:       bb.Dx(),
		Height:      bb.Dy(),
		TotalPixels: bb.Dx() * bb.Dy(),
	}

	diff := image.NewRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))

	for y := 0; y < bb.Dy(); y++ {
		for x := 0; x < bb.Dx(); x++ {
			br, bg, bbl, ba := rgba8(baseline.At(bb.Min.X+x, bb.Min.Y+y))
			sr, sg, sbl, sa := rgba8(snapshot.At(sb.Min.X+x, sb.Min.Y+y))

			d := maxDelta(br, sr, bg, sg, bbl, sbl, ba, sa)
			if d > res.MaxDelta {
				res.MaxDelta = d
			}

			if d > tolerance {
				res.DiffPixels++
				diff.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				// Dimmed grayscale of the baseline keeps context visible.
				g := uint8((int(br) + int(bg) + int(bbl)) / 6)
				diff.Set(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
			}
		}
	}

	if res.TotalPixels > 0 {
		res.DiffRatio = float64(res.DiffPixels) / float64(res.TotalPixels)
	}
	return res, diff
}

// CompareFiles decodes and compares two PNG files. When the comparison finds
// differences and diffOut is non-empty, the highlight image is written there.
func CompareFiles(baselinePath, snapshotPath, diffOut string, tolerance int) (Result, error) {
	baseline, err := decode(baselinePath)
	if err != nil {
		return Result{}, err
	}
	snapshot, err := decode(snapshotPath)
	if err != nil {
		return Result{}, err
	}

	res, diff := Compare(baseline, snapshot, tolerance)

	if res.DiffPixels > 0 && diffOut != "" && diff != nil {
		if err := writePNG(diffOut, diff); err != nil {
			return res, err
		}
	}
	return res, nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "pngdiff.open",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "pngdiff.decode",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return &domain.OpError{
			Op:   "pngdiff.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()
	return png.Encode(f, img)
}

func rgba8(c color.Color) (r, g, b, a uint8) {
	r16, g16, b16, a16 := c.RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8), uint8(a16 >> 8)
}

func maxDelta(pairs ...uint8) int {
	max := 0
	for i := 0; i+1 < len(pairs); i += 2 {
		d := int(pairs[i]) - int(pairs[i+1])
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}
