package viewerproc

import (
	"os"
	"strings"
)

// qtEnvironment returns the process environment for viewer invocations.
// HighDPI scaling is pinned so snapshot geometry is identical across
// machines; extraPath is prepended to PATH so a non-installed Qt build's
// shared libraries resolve.
func qtEnvironment(extraPath string) []string {
	env := os.Environ()

	overrides := map[string]string{
		"QT_ENABLE_HIGHDPI_SCALING":   "0",
		"QT_SCALE_FACTOR":             "1",
		"QT_AUTO_SCREEN_SCALE_FACTOR": "0",
	}

	out := make([]string, 0, len(env)+len(overrides))
	for _, kv := range env {
		key := kv
		if i := strings.IndexByte(kv, '='); i >= 0 {
			key = kv[:i]
		}
		if _, replaced := overrides[key]; replaced {
			continue
		}
		if extraPath != "" && key == "PATH" {
			continue
		}
		out = append(out, kv)
	}

	for k, v := range overrides {
		out = append(out, k+"="+v)
	}

	if extraPath != "" {
		out = append(out, "PATH="+extraPath+string(os.PathListSeparator)+os.Getenv("PATH"))
	}

	return out
}
