package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.log")

	logger, err := New(Options{Path: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("catalogue loaded")
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "catalogue loaded") {
		t.Fatalf("log = %q, want it to contain the info entry", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Fatalf("log = %q, debug entry should be filtered", out)
	}
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.log")

	logger, err := New(Options{Path: path, Verbose: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("debug entry")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "debug entry") {
		t.Fatalf("log = %q, want debug entry", data)
	}
}
