package domain

import (
	"sort"
	"strings"
)

// Judge0 language ids.
const (
	LanguageIDPython     = 71
	LanguageIDJava       = 62
	LanguageIDJavaScript = 63
)

var languageIDs = map[string]int{
	"PYTHON":     LanguageIDPython,
	"JAVA":       LanguageIDJava,
	"JAVASCRIPT": LanguageIDJavaScript,
}

// LanguageID resolves a language name (any case) to its Judge0 id.
func LanguageID(name string) (int, bool) {
	id, ok := languageIDs[strings.ToUpper(strings.TrimSpace(name))]
	return id, ok
}

// LanguageName resolves a Judge0 id back to its canonical name.
func LanguageName(id int) (string, bool) {
	for name, langID := range languageIDs {
		if langID == id {
			return name, true
		}
	}
	return "", false
}

// SupportedLanguages lists the canonical names in sorted order.
func SupportedLanguages() []string {
	names := make([]string, 0, len(languageIDs))
	for name := range languageIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
