package domain

import "testing"

func TestSnapshotNames(t *testing.T) {
	seq, traj := SnapshotNames("writeGradientEcho_label", FormatSVG)
	if seq != "writeGradientEcho_label_seq.svg" {
		t.Fatalf("seq name: %s", seq)
	}
	if traj != "writeGradientEcho_label_traj.svg" {
		t.Fatalf("traj name: %s", traj)
	}

	seq, traj = SnapshotNames("epi", FormatPNG)
	if seq != "epi_seq.png" || traj != "epi_traj.png" {
		t.Fatalf("png names: %s %s", seq, traj)
	}

	// Empty format falls back to SVG.
	seq, _ = SnapshotNames("epi", "")
	if seq != "epi_seq.svg" {
		t.Fatalf("default format: %s", seq)
	}
}
