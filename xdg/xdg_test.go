package xdg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigDirCreatesAndReturnsPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir, err := ConfigDir("remapd")
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat(%s): %v", dir, err)
	}

	if !info.IsDir() {
		t.Fatalf("%s is not a directory", dir)
	}

	if filepath.Base(dir) != "remapd" {
		t.Fatalf("ConfigDir path = %s, want a remapd suffix", dir)
	}
}
