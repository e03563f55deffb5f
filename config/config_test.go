package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	if s.Source != "en" {
		t.Errorf("source = %q, want en", s.Source)
	}
	if s.LocalesDir != "." {
		t.Errorf("locales dir = %q, want .", s.LocalesDir)
	}
	if s.MaxRetries != 3 {
		t.Errorf("max retries = %d, want 3", s.MaxRetries)
	}
	if s.RetryDelay != time.Second {
		t.Errorf("retry delay = %v, want 1s", s.RetryDelay)
	}
	if s.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", s.Timeout)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Source != "en" || s.MaxRetries != 3 || s.Timeout != 30*time.Second {
		t.Errorf("settings = %+v, want defaults", s)
	}
}

func TestLoadSettingsFile(t *testing.T) {
	dir := t.TempDir()
	content := `source: fr
targets: [de, it]
locales_dir: locales
max_retries: 5
retry_delay: 2s
proxy: http://proxy.local:3128
`
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Source != "fr" {
		t.Errorf("source = %q, want fr", s.Source)
	}
	if len(s.Targets) != 2 || s.Targets[0] != "de" || s.Targets[1] != "it" {
		t.Errorf("targets = %v, want [de it]", s.Targets)
	}
	if s.LocalesDir != "locales" {
		t.Errorf("locales dir = %q", s.LocalesDir)
	}
	if s.MaxRetries != 5 {
		t.Errorf("max retries = %d, want 5", s.MaxRetries)
	}
	if s.RetryDelay != 2*time.Second {
		t.Errorf("retry delay = %v, want 2s", s.RetryDelay)
	}
	if s.Proxy != "http://proxy.local:3128" {
		t.Errorf("proxy = %q", s.Proxy)
	}
	// Untouched keys keep their defaults.
	if s.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want default 30s", s.Timeout)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte("source: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for malformed settings file")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte("source: fr\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INTELLATOR_SOURCE", "de")
	t.Setenv("INTELLATOR_MAX_RETRIES", "7")

	s, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Source != "de" {
		t.Errorf("source = %q, want env override de", s.Source)
	}
	if s.MaxRetries != 7 {
		t.Errorf("max retries = %d, want 7", s.MaxRetries)
	}
}

func TestLocalePath(t *testing.T) {
	s := Settings{LocalesDir: "locales"}
	if got := s.LocalePath("ar"); got != filepath.Join("locales", "ar.json") {
		t.Errorf("locale path = %q", got)
	}
}

func TestDetectLanguages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"en.json", "ar.json", "pt-BR.json", "notes.txt", "backup.json", "x.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "fr.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := DetectLanguages(dir)
	want := []string{"ar", "en", "pt-BR"}
	if len(got) != len(want) {
		t.Fatalf("languages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("languages = %v, want %v", got, want)
		}
	}
}

func TestIsLangCode(t *testing.T) {
	valid := []string{"en", "ru", "pt-BR", "zh-CN"}
	invalid := []string{"", "e", "eng", "EN", "1a", "x-BR", "backup"}
	for _, s := range valid {
		if !IsLangCode(s) {
			t.Errorf("IsLangCode(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsLangCode(s) {
			t.Errorf("IsLangCode(%q) = true, want false", s)
		}
	}
}
