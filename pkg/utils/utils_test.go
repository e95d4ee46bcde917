package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path           string
		file, dir, any bool
	}{
		{file, true, false, true},
		{dir, false, true, true},
		{filepath.Join(dir, "missing"), false, false, false},
	}
	for _, tt := range tests {
		if FileExists(tt.path) != tt.file || DirExists(tt.path) != tt.dir || PathExists(tt.path) != tt.any {
			t.Errorf("%s: file=%v dir=%v any=%v", tt.path, FileExists(tt.path), DirExists(tt.path), PathExists(tt.path))
		}
	}
}

func TestFindExecutableFallback(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "mytool-1.2")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	if got := FindExecutable("genstudio-no-such-tool", []string{filepath.Join(dir, "mytool-*")}); got != tool {
		t.Errorf("fallback = %q, want %q", got, tool)
	}
	if got := FindExecutable("genstudio-no-such-tool", nil); got != "" {
		t.Errorf("missing tool = %q", got)
	}
}

func TestRunInMissingBinary(t *testing.T) {
	if err := RunIn(t.TempDir(), "genstudio-no-such-tool"); err == nil {
		t.Error("expected error for a missing binary")
	}
}
