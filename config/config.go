// Package config implements project settings for intellator: defaults,
// an optional .intellator.yaml settings file, INTELLATOR_* environment
// overrides, and auto-detection of locale files in a directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// SettingsFile is the per-project settings file name.
const SettingsFile = ".intellator.yaml"

// envPrefix is the prefix for environment overrides (INTELLATOR_SOURCE,
// INTELLATOR_MAX_RETRIES, ...).
const envPrefix = "intellator"

// Settings holds the resolved configuration. Precedence: defaults, then
// the settings file, then environment variables; command-line flags win
// over all of these.
type Settings struct {
	// Source is the source language code.
	Source string `yaml:"source" envconfig:"SOURCE"`
	// Targets are the default target language codes.
	Targets []string `yaml:"targets" envconfig:"TARGETS"`
	// LocalesDir is the directory holding <lang>.json files.
	LocalesDir string `yaml:"locales_dir" envconfig:"LOCALES_DIR"`
	// MaxRetries is the number of translation attempts per key.
	MaxRetries int `yaml:"max_retries" envconfig:"MAX_RETRIES"`
	// RetryDelay is the backoff unit between attempts.
	RetryDelay time.Duration `yaml:"retry_delay" envconfig:"RETRY_DELAY"`
	// Timeout is the per-request timeout for the translation service.
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	// Proxy is an optional HTTP/HTTPS proxy URL.
	Proxy string `yaml:"proxy" envconfig:"PROXY"`
	// Overwrite skips the existing-output confirmation.
	Overwrite bool `yaml:"overwrite" envconfig:"OVERWRITE"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Source:     "en",
		LocalesDir: ".",
		MaxRetries: 3,
		RetryDelay: time.Second,
		Timeout:    30 * time.Second,
	}
}

// Load resolves settings for a project root: defaults, overlaid with
// rootDir/.intellator.yaml when present, overlaid with INTELLATOR_* env
// variables. A missing settings file is not an error; a malformed one is.
func Load(rootDir string) (Settings, error) {
	s := Defaults()

	path := filepath.Join(rootDir, SettingsFile)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No settings file; defaults apply.
	default:
		return s, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := envconfig.Process(envPrefix, &s); err != nil {
		return s, fmt.Errorf("reading environment: %w", err)
	}

	return s, nil
}

// LocalePath returns the path of the locale file for a language.
func (s Settings) LocalePath(lang string) string {
	return filepath.Join(s.LocalesDir, lang+".json")
}

// DetectLanguages finds language codes from <lang>.json files in a
// directory, sorted. Files whose base name does not look like a language
// code are ignored.
func DetectLanguages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		lang := strings.TrimSuffix(name, ".json")
		if IsLangCode(lang) {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return langs
}

// IsLangCode checks if a string looks like a language code: en, ru,
// pt-BR, zh-CN (BCP 47 with hyphens).
func IsLangCode(s string) bool {
	if len(s) == 2 {
		return s[0] >= 'a' && s[0] <= 'z' && s[1] >= 'a' && s[1] <= 'z'
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) == 2 && len(parts[0]) == 2 && len(parts[1]) >= 2 {
		return parts[0][0] >= 'a' && parts[0][0] <= 'z' &&
			parts[0][1] >= 'a' && parts[0][1] <= 'z'
	}
	return false
}
