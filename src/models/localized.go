package models

import "strings"

const (
	LangEN = "en"
	LangMN = "mn"
)

// Localized is a user-facing text stored in both site languages.
type Localized struct {
	En string `json:"en" bson:"en" example:"Tree planting campaign"`
	Mn string `json:"mn" bson:"mn" example:"Мод тарих аян"`
}

// Get returns the value for lang, falling back to the other language when the
// requested one is blank. Unknown languages read as English.
func (l Localized) Get(lang string) string {
	en := strings.TrimSpace(l.En)
	mn := strings.TrimSpace(l.Mn)
	if lang == LangMN && mn != "" {
		return l.Mn
	}
	if en != "" {
		return l.En
	}
	return l.Mn
}

// IsEmpty reports whether neither language carries text.
func (l Localized) IsEmpty() bool {
	return strings.TrimSpace(l.En) == "" && strings.TrimSpace(l.Mn) == ""
}

// LocalizedList is the list counterpart of Localized, used for requirement lists.
type LocalizedList struct {
	En []string `json:"en" bson:"en"`
	Mn []string `json:"mn" bson:"mn"`
}

func (l LocalizedList) Get(lang string) []string {
	if lang == LangMN && len(l.Mn) > 0 {
		return l.Mn
	}
	if len(l.En) > 0 {
		return l.En
	}
	return l.Mn
}

// NormalizeLang maps a query value to a supported language code.
func NormalizeLang(lang string) string {
	if strings.EqualFold(strings.TrimSpace(lang), LangMN) {
		return LangMN
	}
	return LangEN
}
