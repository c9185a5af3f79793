// Package prefs handles catalog viewer preferences persistence.
// Preferences are stored in ~/.config/catalog/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Layout values. LayoutAuto lets the terminal width decide.
const (
	LayoutAuto    = "auto"
	LayoutWide    = "wide"
	LayoutCompact = "compact"
)

// Prefs holds user preferences for the viewer.
type Prefs struct {
	Theme  string `toml:"theme"`
	Layout string `toml:"layout"`
}

const (
	defaultPrefsPath = "~/.config/catalog/prefs.toml"
	defaultTheme     = "Nightfox"
)

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme, Layout: LayoutAuto}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path. Preferences are cosmetic, so any
// problem (missing file, unreadable file, bad TOML) yields defaults.
func Load(path string) Prefs {
	p := Defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return p
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return p
	}

	var stored Prefs
	if err := toml.Unmarshal(data, &stored); err != nil {
		return p
	}
	if theme := strings.TrimSpace(stored.Theme); theme != "" {
		p.Theme = theme
	}
	p.Layout = normalizeLayout(stored.Layout)
	return p
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	p.Layout = normalizeLayout(p.Layout)
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func normalizeLayout(value string) string {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case LayoutWide, LayoutCompact:
		return v
	default:
		return LayoutAuto
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
