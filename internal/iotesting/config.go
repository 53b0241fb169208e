// Package iotesting provides shared test utilities. This is an internal
// package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/mycocurate/pkg/config"
)

// TempConfig returns the default configuration with the data directory
// inside t.TempDir(). Options are applied after the data directory.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    cfg := iotesting.TempConfig(t, config.OptJobsNumber(2))
//	    // all artifacts of cfg live in a temporary directory
//	}
func TempConfig(t *testing.T, opts ...config.Option) *config.Config {
	t.Helper()

	cfg := config.New()
	cfg.Update([]config.Option{config.OptDataDir(t.TempDir())})
	cfg.Update(opts)
	return cfg
}

// SetupTempHome points HOME and the data directory to temporary
// directories, so config, cache and logs of a CLI run never touch the
// real home. Returns the home directory.
func SetupTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MYCOCURATE_DATA_DIR", filepath.Join(home, "data"))
	t.Setenv("MYCOCURATE_LOG_DESTINATION", "file")
	return home
}

// WriteFile creates a file with all parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
