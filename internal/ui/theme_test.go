package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 || names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}
	names[0] = "changed"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatalf("ThemeNames() exposes the internal order")
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for current, want := range cases {
		if got := NextTheme(current); got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", current, got, want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		if th.Name != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, th.Name)
		}
		if th.Surface == "" || th.Text == "" || th.SelectionBg == "" {
			t.Fatalf("GetTheme(%q) has empty colours: %#v", name, th)
		}
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", got)
	}
}
