package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLookupTool_Override(t *testing.T) {
	tool := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("Failed to create tool: %v", err)
	}

	got, err := LookupTool(FFmpegTool, tool)
	if err != nil {
		t.Fatalf("LookupTool() error = %v", err)
	}
	if got != tool {
		t.Errorf("LookupTool() = %q, want %q", got, tool)
	}
}

func TestLookupTool_MissingOverride(t *testing.T) {
	_, err := LookupTool(FFmpegTool, filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("Expected error for missing override")
	}
	if !strings.Contains(err.Error(), "ffmpeg not found at") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLookupTool_SearchesPath(t *testing.T) {
	dir := t.TempDir()
	name := "ytcrop-fake-tool"
	if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("Failed to create tool: %v", err)
	}
	if runtime.GOOS == OSWindows {
		t.Skip("PATH lookup needs an .exe on Windows")
	}
	t.Setenv("PATH", dir)

	got, err := LookupTool(name, "")
	if err != nil {
		t.Fatalf("LookupTool() error = %v", err)
	}
	if got != filepath.Join(dir, name) {
		t.Errorf("LookupTool() = %q", got)
	}

	if _, err := LookupTool("ytcrop-definitely-missing", ""); err == nil {
		t.Error("Expected error for unknown tool")
	}
}
