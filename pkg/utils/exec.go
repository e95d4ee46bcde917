package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenPath opens a file or folder with the desktop's default handler.
func OpenPath(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		// 'explorer' is the standard way to open files/folders in Windows
		cmd = exec.Command("explorer", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}

// RunIn runs name with args inside dir and returns combined output on failure.
func RunIn(dir, name string, args ...string) error {
	bin := FindExecutable(name, nil)
	if bin == "" {
		return fmt.Errorf("%s not found in PATH", name)
	}
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s %v: %w: %s", name, args, err, out)
	}
	return nil
}
