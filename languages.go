package gotdict

import "strings"

// Default language pair for lookups.
const (
	DefaultSourceLang = "en"
	DefaultTargetLang = "ko"
)

// LanguageNames maps language codes to human-readable names for prompts.
var LanguageNames = map[string]string{
	"en": "English",
	"ko": "Korean",
	"ja": "Japanese",
	"zh": "Chinese (Simplified)",
	"de": "German",
	"es": "Spanish",
	"fr": "French",
}

// BaseLanguage reduces a locale such as "ko_KR" or "ko-KR" to "ko".
func BaseLanguage(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "_-"); i >= 0 {
		code = code[:i]
	}
	return code
}

// LanguageName returns the display name for code, falling back to the code itself.
func LanguageName(code string) string {
	if name, ok := LanguageNames[BaseLanguage(code)]; ok {
		return name
	}
	return code
}
