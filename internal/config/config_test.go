package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Source != defaultSource {
		t.Fatalf("Source = %q, want %q", cfg.Source, defaultSource)
	}

	wantLogFile, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLogFile {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLogFile)
	}
	if cfg.Watch || cfg.RequestTimeout != 0 || len(cfg.Categories) != 0 {
		t.Fatalf("unexpected non-default values: %#v", cfg)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
source = "  https://example.com/products.json  "
categories = [" PP ", "Hybrid", "", "all", "hybrid", "PU"]
log_file = "  ~/logs/catalog.log  "
watch = true
request_timeout = "3s"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Source != "https://example.com/products.json" {
		t.Fatalf("Source = %q", cfg.Source)
	}
	if want := []string{"PP", "Hybrid", "PU"}; !reflect.DeepEqual(cfg.Categories, want) {
		t.Fatalf("Categories = %#v, want %#v", cfg.Categories, want)
	}
	if cfg.LogFile != filepath.Join(home, "logs", "catalog.log") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if !cfg.Watch {
		t.Fatalf("Watch = false, want true")
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
source = "   "
log_file = ""
request_timeout = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Source != defaultSource {
		t.Fatalf("Source = %q, want %q", cfg.Source, defaultSource)
	}
	if cfg.LogFile != mustExpand(defaultLogFile) {
		t.Fatalf("LogFile = %q, want default", cfg.LogFile)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`source = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidTimeoutFails(t *testing.T) {
	for _, value := range []string{"soon", "-1s"} {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(`request_timeout = "`+value+`"`), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "request_timeout") {
			t.Fatalf("Load(%q) error = %v, want request_timeout error", value, err)
		}
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
