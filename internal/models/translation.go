package models

// Translation is one UI string, keyed by (page, key).
type Translation struct {
	ID      int    `json:"id"`
	Page    string `json:"page"`
	Key     string `json:"key"`
	English string `json:"english"`
	Swedish string `json:"swedish"`
}

// TranslationPages are the pages the UI knows about.
var TranslationPages = []string{"login", "terms", "pricelist", "register"}

func ValidTranslationPage(page string) bool {
	for _, p := range TranslationPages {
		if p == page {
			return true
		}
	}
	return false
}
