package viewerproc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/ports"
)

const zoomMarker = "ZOOM_MS:"

// automation scenario consumed by the viewer's --automation mode.
type scenarioAction struct {
	Type   string  `json:"type"`
	Path   string  `json:"path,omitempty"`
	Factor float64 `json:"factor,omitempty"`
}

type scenario struct {
	Actions []scenarioAction `json:"actions"`
}

var _ ports.PerfRunner = (*Runner)(nil)

// MeasureZoom takes one zoom-timing sample. With the full viewer it drives an
// automation scenario and scans streamed stdout for the ZOOM_MS marker; the
// standalone PerfZoomTest binary takes the sequence via --seq instead.
func (r *Runner) MeasureZoom(ctx context.Context, seqPath string) (domain.PerfSample, error) {
	abs, err := filepath.Abs(seqPath)
	if err != nil {
		abs = seqPath
	}

	if !strings.Contains(strings.ToLower(filepath.Base(r.exe)), "seqeye") {
		return r.measureOneShot(ctx, abs)
	}
	return r.measureScenario(ctx, abs)
}

func (r *Runner) measureScenario(ctx context.Context, seqAbs string) (domain.PerfSample, error) {
	scenPath, err := writeScenario(seqAbs)
	if err != nil {
		return domain.PerfSample{}, err
	}
	defer os.Remove(scenPath)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.exe, "--automation", scenPath)
	cmd.Env = qtEnvironment(r.extraPath)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return domain.PerfSample{}, execError(r.exe, err)
	}
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return domain.PerfSample{}, execError(r.exe, err)
	}

	var out strings.Builder
	var zoomMS *float64
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		out.WriteString(line)
		out.WriteByte('\n')
		if zoomMS == nil {
			zoomMS = parseZoomLine(line)
		}
	}

	sample := domain.PerfSample{
		ZoomMS: zoomMS,
		Stdout: out.String(),
	}

	waitErr := cmd.Wait()
	sample.Stderr = stderr.String()

	if ctx.Err() == context.DeadlineExceeded {
		return sample, context.DeadlineExceeded
	}
	if waitErr != nil {
		var ee *exec.ExitError
		if errors.As(waitErr, &ee) {
			sample.ExitCode = ee.ExitCode()
			return sample, nil
		}
		return sample, execError(r.exe, waitErr)
	}
	return sample, nil
}

func (r *Runner) measureOneShot(ctx context.Context, seqAbs string) (domain.PerfSample, error) {
	res, err := r.run(ctx, []string{"--seq", seqAbs})
	sample := domain.PerfSample{
		ZoomMS:   ParseZoomMS(res.Stdout),
		ExitCode: res.ExitCode,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
	}
	return sample, err
}

func writeScenario(seqAbs string) (string, error) {
	scen := scenario{Actions: []scenarioAction{
		{Type: "open_file", Path: filepath.ToSlash(seqAbs)},
		{Type: "reset_view"},
		{Type: "measure_zoom_by_factor", Factor: 0.5},
	}}

	b, err := json.Marshal(scen)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "seqcheck-scenario-*.json")
	if err != nil {
		return "", &domain.OpError{
			Op:   "viewerproc.scenario",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// ParseZoomMS extracts the first ZOOM_MS value from captured stdout.
// Returns nil when the marker is absent or malformed.
func ParseZoomMS(stdout string) *float64 {
	for _, line := range strings.Split(stdout, "\n") {
		if v := parseZoomLine(line); v != nil {
			return v
		}
	}
	return nil
}

func parseZoomLine(line string) *float64 {
	if !strings.HasPrefix(line, zoomMarker) {
		return nil
	}
	raw := strings.TrimSpace(line[len(zoomMarker):])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func execError(exe string, err error) error {
	return &domain.OpError{
		Op:   "viewerproc.run",
		Kind: domain.KindExecution,
		Path: exe,
		Err:  err,
	}
}
