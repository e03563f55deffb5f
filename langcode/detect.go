package langcode

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithPreloadedLanguageModels().
			Build()
	})
	return detector
}

// Detect guesses the ISO 639-1 code of the language the samples are
// written in, for "--source auto". Samples are joined so short UI strings
// still give the detector enough signal. Returns "" when there is not
// enough text or the detector is unsure.
func Detect(samples []string) string {
	text := strings.TrimSpace(strings.Join(samples, " "))
	if text == "" {
		return ""
	}

	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters < 6 {
		return ""
	}

	lang, exists := getDetector().DetectLanguageOf(text)
	if !exists {
		return ""
	}

	code := strings.ToLower(lang.IsoCode639_1().String())
	if len(code) != 2 {
		return ""
	}
	return code
}
