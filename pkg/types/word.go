// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the plain records shared by the normalizer, the
// store, and the CLI.
package types

import "fmt"

// WordRecord is one headword row, keyed on (Word, Hanja). A word with
// several Hanja origins appears once per origin.
type WordRecord struct {
	// Word is the surface form in Hangul.
	Word string `json:"word" yaml:"word"`

	// Hanja holds one character per Sino-Korean syllable. Nil means the
	// word has no recorded Hanja; it is never an empty string.
	Hanja *string `json:"hanja,omitempty" yaml:"hanja,omitempty"`

	// KoreanGlossary is the native-language definition.
	KoreanGlossary *string `json:"korean_glossary,omitempty" yaml:"korean_glossary,omitempty"`

	EnglishLemma      *string `json:"english_lemma,omitempty" yaml:"english_lemma,omitempty"`
	EnglishDefinition *string `json:"english_definition,omitempty" yaml:"english_definition,omitempty"`
	FrenchLemma       *string `json:"french_lemma,omitempty" yaml:"french_lemma,omitempty"`
	FrenchDefinition  *string `json:"french_definition,omitempty" yaml:"french_definition,omitempty"`

	// Pronunciation is an audio reference, usually a URL.
	Pronunciation *string `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
}

// HanjaRecord describes one Hanja character.
type HanjaRecord struct {
	Character         string  `json:"character" yaml:"character"`
	KoreanReading     string  `json:"korean_reading" yaml:"reading"`
	EnglishDefinition *string `json:"english_definition,omitempty" yaml:"en,omitempty"`
	FrenchDefinition  *string `json:"french_definition,omitempty" yaml:"fr,omitempty"`
	Pronunciation     *string `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
}

// Language selects which translated columns a query resolves.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

// ParseLanguage validates a language code.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case English, French:
		return Language(s), nil
	}
	return "", fmt.Errorf("unsupported language %q: use en or fr", s)
}

// HanjaMeaning is one character of a word's Hanja with its reading and
// the definition in the requested language.
type HanjaMeaning struct {
	Character  string  `json:"character"`
	Reading    string  `json:"reading"`
	Definition *string `json:"definition,omitempty"`
}

// GlossaryRow is the language-resolved view of one WordRecord.
type GlossaryRow struct {
	Glossary      *string `json:"glossary,omitempty"`
	Lemma         *string `json:"lemma,omitempty"`
	Definition    *string `json:"definition,omitempty"`
	Pronunciation *string `json:"pronunciation,omitempty"`
}

// RelatedWord is a word sharing a Hanja character with the query.
type RelatedWord struct {
	Word       string  `json:"word"`
	Hanja      string  `json:"hanja"`
	Glossary   *string `json:"glossary,omitempty"`
	Lemma      *string `json:"lemma,omitempty"`
	Definition *string `json:"definition,omitempty"`
}

// UniqueHanja pairs a character with the only word that uses it.
type UniqueHanja struct {
	Word      string `json:"word"`
	Character string `json:"character"`
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
