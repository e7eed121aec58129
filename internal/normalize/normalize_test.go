// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hanja-lexicon/pkg/types"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func parse(t *testing.T, doc string) []types.WordRecord {
	t.Helper()
	records, err := ParseDocument(strings.NewReader(doc))
	require.NoError(t, err)
	return records
}

const chimpanzeeDoc = `{"LexicalResource": {"Lexicon": {"LexicalEntry": {
	"Lemma": {"feat": {"att": "writtenForm", "val": "침팬지"}},
	"feat": {"att": "partOfSpeech", "val": "명사"},
	"Sense": {
		"feat": {"att": "definition", "val": "동물"},
		"Equivalent": {"feat": [
			{"att": "language", "val": "영어"},
			{"att": "lemma", "val": "chimpanzee"},
			{"att": "definition", "val": "a great ape"}
		]}
	}
}}}}`

const hanjaDoc = `{"LexicalResource": {"Lexicon": [{"LexicalEntry": [
	{
		"Lemma": [{"feat": [{"att": "writtenForm", "val": "한자"}]}, {"feat": {"att": "writtenForm", "val": "ignored"}}],
		"feat": [{"att": "homonym_number", "val": 0}, {"att": "origin", "val": "漢字"}],
		"WordForm": {"feat": [{"att": "type", "val": "발음"}, {"att": "sound", "val": "http://example.com/hanja.wav"}]},
		"Sense": [
			{"feat": [{"att": "syntacticAnnotation", "val": "x"}],
			 "Equivalent": [
				{"feat": [{"att": "language", "val": "영어"}, {"att": "lemma", "val": "first"}, {"att": "definition", "val": "first def"}]},
				{"feat": [{"att": "language", "val": "일본어"}, {"att": "lemma", "val": "漢字"}]},
				{"feat": [{"att": "language", "val": "프랑스어"}, {"att": "lemma", "val": "caractère chinois"}, {"att": "definition", "val": "écriture"}]},
				{"feat": [{"att": "lemma", "val": "Chinese character"}, {"att": "language", "val": "영어"}, {"att": "definition", "val": "logogram"}]}
			 ]},
			{"feat": {"att": "definition", "val": "중국에서 만든 문자"},
			 "Equivalent": {"feat": [{"att": "language", "val": "프랑스어"}, {"att": "lemma", "val": "second sense"}]}}
		]
	},
	{
		"Lemma": {"feat": {"att": "writtenForm", "val": "대학"}},
		"feat": {"att": "origin", "val": "大學"}
	}
]}]}}`

func TestExtractSingleObjectShapes(t *testing.T) {
	records := parse(t, chimpanzeeDoc)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "침팬지", r.Word)
	assert.Nil(t, r.Hanja)
	assert.Equal(t, "동물", types.Deref(r.KoreanGlossary))
	assert.Equal(t, "chimpanzee", types.Deref(r.EnglishLemma))
	assert.Equal(t, "a great ape", types.Deref(r.EnglishDefinition))
	assert.Nil(t, r.FrenchLemma)
	assert.Nil(t, r.FrenchDefinition)
	assert.Nil(t, r.Pronunciation)
}

func TestExtractListShapes(t *testing.T) {
	records := parse(t, hanjaDoc)
	require.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, "한자", r.Word, "first Lemma wins")
	assert.Equal(t, "漢字", types.Deref(r.Hanja))
	assert.Equal(t, "중국에서 만든 문자", types.Deref(r.KoreanGlossary), "definition found in a later sense")
	assert.Equal(t, "Chinese character", types.Deref(r.EnglishLemma), "last English equivalent wins")
	assert.Equal(t, "logogram", types.Deref(r.EnglishDefinition))
	assert.Equal(t, "caractère chinois", types.Deref(r.FrenchLemma), "equivalents read from the first sense only")
	assert.Equal(t, "écriture", types.Deref(r.FrenchDefinition))
	assert.Equal(t, "http://example.com/hanja.wav", types.Deref(r.Pronunciation))

	assert.Equal(t, "대학", records[1].Word)
	assert.Equal(t, "大學", types.Deref(records[1].Hanja))
	assert.Nil(t, records[1].KoreanGlossary)
	assert.Nil(t, records[1].EnglishLemma)
}

func TestExtractMissingFields(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{"no lexical entries", `{"LexicalResource": {}}`, 0},
		{"entry without lemma", `{"LexicalEntry": {"feat": {"att": "origin", "val": "字"}}}`, 0},
		{"lemma without written form", `{"LexicalEntry": {"Lemma": {"feat": {"att": "other", "val": "x"}}}}`, 0},
		{"empty written form", `{"LexicalEntry": {"Lemma": {"feat": {"att": "writtenForm", "val": "  "}}}}`, 0},
		{"scalar entry", `{"LexicalEntry": ["oops", {"Lemma": {"feat": {"att": "writtenForm", "val": "말"}}}]}`, 1},
		{"top-level array", `[{"LexicalEntry": {"Lemma": {"feat": {"att": "writtenForm", "val": "말"}}}}]`, 1},
		{"null fields", `{"LexicalEntry": {"Lemma": {"feat": {"att": "writtenForm", "val": "말"}}, "feat": null, "Sense": null}}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := parse(t, tt.doc)
			assert.Len(t, records, tt.want)
			for _, r := range records {
				assert.Nil(t, r.Hanja)
				assert.Nil(t, r.KoreanGlossary)
			}
		})
	}
}

func TestExtractEmptyOriginIsAbsent(t *testing.T) {
	records := parse(t, `{"LexicalEntry": {
		"Lemma": {"feat": {"att": "writtenForm", "val": "말"}},
		"feat": [{"att": "origin", "val": ""}]
	}}`)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Hanja)
}

func TestAsList(t *testing.T) {
	one := map[string]any{"att": "x"}
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"nil", nil, 0},
		{"single object", one, 1},
		{"list", []any{one, one}, 2},
		{"empty list", []any{}, 0},
		{"scalar", "x", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, asList(tt.in), tt.want)
		})
	}
}

func TestFeatValue(t *testing.T) {
	tests := []struct {
		name   string
		feat   any
		want   string
		wantOK bool
	}{
		{"single object", map[string]any{"att": "origin", "val": "字"}, "字", true},
		{"list", []any{map[string]any{"att": "a", "val": "1"}, map[string]any{"att": "origin", "val": "字"}}, "字", true},
		{"first match wins", []any{map[string]any{"att": "origin", "val": "一"}, map[string]any{"att": "origin", "val": "二"}}, "一", true},
		{"numeric value", map[string]any{"att": "origin", "val": float64(3)}, "3", true},
		{"large numeric value", map[string]any{"att": "origin", "val": float64(12345678)}, "12345678", true},
		{"fractional value", map[string]any{"att": "origin", "val": 1.5}, "1.5", true},
		{"missing", []any{map[string]any{"att": "a", "val": "1"}}, "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := featValue(tt.feat, "origin")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadDirSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "01.json", chimpanzeeDoc)
	writeDoc(t, dir, "02.json", `{"LexicalEntry": `)
	writeDoc(t, dir, "03.json", hanjaDoc)
	writeDoc(t, dir, "04.json", `{"LexicalEntry": {"Lemma": {"feat": {"att": "writtenForm", "val": "말"}}}} }}garbage{`)
	writeDoc(t, dir, "notes.txt", "not a document")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	res, err := ReadDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Files)
	require.Len(t, res.Records, 3)
	assert.Equal(t, "침팬지", res.Records[0].Word)
	assert.Equal(t, "한자", res.Records[1].Word)
	for _, r := range res.Records {
		assert.NotEqual(t, "말", r.Word)
	}

	require.Len(t, res.Skipped, 2)
	for i, name := range []string{"02.json", "04.json"} {
		skipped := res.Skipped[i]
		assert.Equal(t, filepath.Join(dir, name), skipped.Path)
		assert.True(t, errors.Is(skipped, ErrMalformedDocument))
		assert.Contains(t, skipped.Error(), name)
	}
}

func TestParseDocumentTrailingData(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"trailing whitespace", chimpanzeeDoc + "\n\n", false},
		{"trailing braces", `{"LexicalEntry": {"Lemma": {"feat": {"att": "writtenForm", "val": "말"}}}} }}`, true},
		{"trailing garbage", `{"LexicalEntry": {"Lemma": {"feat": {"att": "writtenForm", "val": "말"}}}} garbage`, true},
		{"second value", `{"LexicalEntry": {"Lemma": {"feat": {"att": "writtenForm", "val": "말"}}}} {}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseDocument(strings.NewReader(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, records)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, records)
		})
	}
}

func TestReadDirMissingDirectory(t *testing.T) {
	_, err := ReadDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestReadDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "01.json", chimpanzeeDoc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadDir(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
