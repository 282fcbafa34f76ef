package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// External tool names
const (
	FFmpegTool = "ffmpeg"
	YtDlpTool  = "yt-dlp"
)

// LookupTool resolves an external executable. An explicit override path wins;
// otherwise PATH is searched, then the directory holding the running binary.
func LookupTool(name, override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("%s not found at %s: %w", name, override, err)
		}
		return override, nil
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), name)
		if runtime.GOOS == OSWindows {
			candidate += ".exe"
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%s not found in PATH, please install it", name)
}
