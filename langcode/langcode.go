// Package langcode resolves language names and codes to the ISO 639-1
// codes the translation service expects, and provides human-readable
// display names for reports.
package langcode

import (
	"strings"

	"golang.org/x/text/language"
)

type entry struct {
	code    string   // ISO 639-1 (2-letter)
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "English", []string{"english"}},
	{"ar", "Arabic", []string{"arabic"}},
	{"es", "Spanish", []string{"spanish"}},
	{"fr", "French", []string{"french"}},
	{"de", "German", []string{"german"}},
	{"it", "Italian", []string{"italian"}},
	{"pt", "Portuguese", []string{"portuguese"}},
	{"zh", "Chinese", []string{"chinese"}},
	{"ja", "Japanese", []string{"japanese"}},
	{"ko", "Korean", []string{"korean"}},
	{"ru", "Russian", []string{"russian"}},
	{"hi", "Hindi", []string{"hindi"}},
	{"nl", "Dutch", []string{"dutch"}},
	{"pl", "Polish", []string{"polish"}},
	{"tr", "Turkish", []string{"turkish"}},
	{"uk", "Ukrainian", []string{"ukrainian"}},
	{"sv", "Swedish", []string{"swedish"}},
	{"fi", "Finnish", []string{"finnish"}},
}

// Index maps built at init time.
var (
	byCode map[string]*entry
	byWord map[string]*entry
)

func init() {
	byCode = make(map[string]*entry, len(languages))
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode[e.code] = e
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(s string) *entry {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	if e, ok := byCode[s]; ok {
		return e
	}
	if e, ok := byWord[s]; ok {
		return e
	}
	return nil
}

// Resolve normalizes a language name or code to an ISO 639-1 code:
// "English" -> "en", "FR" -> "fr". Input the registry does not know is
// parsed as a BCP 47 tag ("pt-BR" -> "pt"); as a last resort the
// lowercased input passes through so uncommon codes still reach the
// translation service.
func Resolve(s string) string {
	if e := lookup(s); e != nil {
		return e.code
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	if tag, err := language.Parse(trimmed); err == nil {
		if base, conf := tag.Base(); conf > language.No {
			return base.String()
		}
	}
	return strings.ToLower(trimmed)
}

// DisplayName returns a human-readable name for a code, or the uppercased
// code when unknown.
func DisplayName(code string) string {
	if e := lookup(code); e != nil {
		return e.display
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return "Unknown"
	}
	return strings.ToUpper(code)
}
