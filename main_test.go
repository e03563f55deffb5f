package main

import (
	"path/filepath"
	"testing"

	"github.com/intellator/intellator/config"
)

func TestDerivedOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		target string
		want   string
	}{
		{"en.json", "ar", "en_ar.json"},
		{filepath.Join("locales", "en.json"), "fr", filepath.Join("locales", "en_fr.json")},
		{"messages", "de", "messages_de.json"},
	}
	for _, tt := range tests {
		if got := derivedOutputPath(tt.input, tt.target); got != tt.want {
			t.Errorf("derivedOutputPath(%q, %q) = %q, want %q", tt.input, tt.target, got, tt.want)
		}
	}
}

func TestNormalizeSource(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"auto", "auto"},
		{"AUTO", "auto"},
		{" auto ", "auto"},
		{"English", "en"},
		{"FR", "fr"},
	}
	for _, tt := range tests {
		if got := normalizeSource(tt.in); got != tt.want {
			t.Errorf("normalizeSource(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveRunPositional(t *testing.T) {
	source, targets, input, err := resolveRun([]string{"en", "ar", "Spanish"}, translateFlags{}, config.Defaults())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if source != "en" {
		t.Errorf("source = %q, want en", source)
	}
	if len(targets) != 2 || targets[0] != "ar" || targets[1] != "es" {
		t.Errorf("targets = %v, want [ar es]", targets)
	}
	if input != filepath.Join(rootDir, "en.json") {
		t.Errorf("input = %q", input)
	}
}

func TestResolveRunPositionalNeedsTarget(t *testing.T) {
	if _, _, _, err := resolveRun([]string{"en"}, translateFlags{}, config.Defaults()); err == nil {
		t.Fatal("expected error for a single positional language")
	}
}

func TestResolveRunFlagDefaults(t *testing.T) {
	source, targets, input, err := resolveRun(nil, translateFlags{}, config.Defaults())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if source != "en" {
		t.Errorf("source = %q, want en", source)
	}
	if len(targets) != 1 || targets[0] != "ar" {
		t.Errorf("targets = %v, want [ar]", targets)
	}
	if input != filepath.Join(rootDir, "en.json") {
		t.Errorf("input = %q", input)
	}
}

func TestResolveRunSettingsTargets(t *testing.T) {
	settings := config.Defaults()
	settings.Targets = []string{"German", "it"}

	_, targets, _, err := resolveRun(nil, translateFlags{}, settings)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(targets) != 2 || targets[0] != "de" || targets[1] != "it" {
		t.Errorf("targets = %v, want [de it]", targets)
	}
}

func TestOutputPathForRun(t *testing.T) {
	settings := config.Defaults()

	// Explicit -o wins for the first target only.
	f := translateFlags{output: "custom.json"}
	if got := outputPathForRun(nil, f, settings, "en.json", "ar", 0); got != "custom.json" {
		t.Errorf("first target = %q, want custom.json", got)
	}
	if got := outputPathForRun(nil, f, settings, "en.json", "es", 1); got != "en_es.json" {
		t.Errorf("second target = %q, want derived path", got)
	}

	// Positional mode names files by language code.
	if got := outputPathForRun([]string{"en", "ar"}, translateFlags{}, settings, "en.json", "ar", 0); got != filepath.Join(rootDir, "ar.json") {
		t.Errorf("positional = %q", got)
	}
}

func TestTruncateKey(t *testing.T) {
	if got := truncateKey("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncateKey("a.very.long.translation.key", 10); got != "a.very.lon..." {
		t.Errorf("got %q", got)
	}
}
