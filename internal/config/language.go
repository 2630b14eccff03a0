package config

// Language is a selectable UI and speech language
type Language struct {
	Code   string // value stored in the config file
	Name   string // label shown in the settings menu
	Locale string // BCP 47 tag passed to speech recognition
}

var languages = []Language{
	{Code: "en", Name: "English", Locale: "en-US"},
	{Code: "hi", Name: "हिंदी", Locale: "hi-IN"},
}

// Languages returns the supported languages in menu order
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LanguageCodes returns the supported language codes
func LanguageCodes() []string {
	codes := make([]string, len(languages))
	for i, l := range languages {
		codes[i] = l.Code
	}
	return codes
}

// LookupLanguage finds a language by code
func LookupLanguage(code string) (Language, bool) {
	for _, l := range languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// CurrentLanguage returns the configured language, falling back to English
func (s *Settings) CurrentLanguage() Language {
	if l, ok := LookupLanguage(s.Language); ok {
		return l
	}
	return languages[0]
}
