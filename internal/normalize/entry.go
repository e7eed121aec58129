// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "github.com/pdiddy/hanja-lexicon/pkg/types"

// Field and attribute names used by the dictionary export.
const (
	keyLexicalEntry = "LexicalEntry"
	keyLemma        = "Lemma"
	keyFeat         = "feat"
	keySense        = "Sense"
	keyEquivalent   = "Equivalent"
	keyWordForm     = "WordForm"

	attWrittenForm = "writtenForm"
	attOrigin      = "origin"
	attDefinition  = "definition"
	attLanguage    = "language"
	attLemma       = "lemma"
	attSound       = "sound"
)

// Language tags of the equivalents we keep.
const (
	langEnglish = "영어"
	langFrench  = "프랑스어"
)

// equivalent is one translated sense.
type equivalent struct {
	lemma      *string
	definition *string
}

func extractEntry(entry map[string]any) (types.WordRecord, bool) {
	word, ok := surfaceWord(entry)
	if !ok {
		return types.WordRecord{}, false
	}

	rec := types.WordRecord{
		Word:           word,
		Hanja:          origin(entry),
		KoreanGlossary: glossary(entry),
		Pronunciation:  sound(entry),
	}

	equivs := equivalents(entry)
	if en, ok := equivs[langEnglish]; ok {
		rec.EnglishLemma = en.lemma
		rec.EnglishDefinition = en.definition
	}
	if fr, ok := equivs[langFrench]; ok {
		rec.FrenchLemma = fr.lemma
		rec.FrenchDefinition = fr.definition
	}
	return rec, true
}

// surfaceWord reads writtenForm from the first Lemma.
func surfaceWord(entry map[string]any) (string, bool) {
	lemmas := asMaps(entry[keyLemma])
	if len(lemmas) == 0 {
		return "", false
	}
	return featValue(lemmas[0][keyFeat], attWrittenForm)
}

// origin reads the Hanja string from the entry's own feat list.
func origin(entry map[string]any) *string {
	v, ok := featValue(entry[keyFeat], attOrigin)
	if !ok {
		return nil
	}
	return &v
}

// glossary returns the first definition found across all senses.
func glossary(entry map[string]any) *string {
	for _, sense := range asMaps(entry[keySense]) {
		if v, ok := featValue(sense[keyFeat], attDefinition); ok {
			return &v
		}
	}
	return nil
}

// equivalents reads the first sense's equivalents keyed by language tag.
// Later equivalents for the same language replace earlier ones.
func equivalents(entry map[string]any) map[string]equivalent {
	senses := asMaps(entry[keySense])
	if len(senses) == 0 {
		return nil
	}

	out := make(map[string]equivalent)
	for _, eq := range asMaps(senses[0][keyEquivalent]) {
		var lang string
		var e equivalent
		for _, f := range asMaps(eq[keyFeat]) {
			att, _ := f["att"].(string)
			val, ok := stringValue(f["val"])
			if !ok {
				continue
			}
			switch att {
			case attLanguage:
				lang = val
			case attLemma:
				e.lemma = &val
			case attDefinition:
				e.definition = &val
			}
		}
		if lang == langEnglish || lang == langFrench {
			out[lang] = e
		}
	}
	return out
}

// sound reads the audio reference from the first WordForm that has one.
func sound(entry map[string]any) *string {
	for _, form := range asMaps(entry[keyWordForm]) {
		if v, ok := featValue(form[keyFeat], attSound); ok {
			return &v
		}
	}
	return nil
}
