package route

import "slices"

var languageNames = map[string]string{
	"en":    "English",
	"es":    "Español",
	"zh-CN": "简体中文",
	"zh-TW": "繁體中文",
	"pt":    "Português",
}

// LanguageName returns the display name for a language code.
// The lookup is exact and case-sensitive.
func LanguageName(code string) (string, bool) {
	name, ok := languageNames[code]
	return name, ok
}

// KnownLanguages returns the supported language codes in sorted order.
func KnownLanguages() []string {
	codes := make([]string, 0, len(languageNames))
	for code := range languageNames {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}
