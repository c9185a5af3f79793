package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the catalog viewer settings.
type Config struct {
	Source         string
	Categories     []string
	LogFile        string
	Watch          bool
	RequestTimeout time.Duration
}

const (
	defaultConfigPath = "~/.config/catalog/config.toml"
	defaultSource     = "products.json"
	defaultLogFile    = "~/.local/state/catalog/catalog.log"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Source:  defaultSource,
		LogFile: mustExpand(defaultLogFile),
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Source         string   `toml:"source"`
		Categories     []string `toml:"categories"`
		LogFile        string   `toml:"log_file"`
		Watch          bool     `toml:"watch"`
		RequestTimeout string   `toml:"request_timeout"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if source := strings.TrimSpace(raw.Source); source != "" {
		cfg.Source = source
	}
	cfg.Categories = cleanCategories(raw.Categories)
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	cfg.Watch = raw.Watch

	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: request_timeout: %w", err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("parse config: request_timeout must not be negative")
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

// cleanCategories trims entries, drops blanks and the "all" sentinel (the
// selector always offers it first), and removes case-insensitive duplicates.
func cleanCategories(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || key == "all" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
