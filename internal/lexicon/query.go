// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/pdiddy/hanja-lexicon/pkg/types"
)

// wordColumns returns the lemma and definition columns of korean_words for
// lang. Unknown languages resolve to English.
func wordColumns(lang types.Language) (lemma, definition string) {
	if lang == types.French {
		return "french_lemma", "french_definition"
	}
	return "english_lemma", "english_definition"
}

// hanjaColumn returns the definition column of hanja_characters for lang.
func hanjaColumn(lang types.Language) string {
	if lang == types.French {
		return "french_definition"
	}
	return "english_definition"
}

// distinctRunes returns the characters of s in first-seen order.
func distinctRunes(s string) []string {
	seen := make(map[rune]bool)
	var out []string
	for _, r := range s {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, string(r))
	}
	return out
}

// HanjaForWord returns every Hanja variant recorded for word, one per
// homograph, in ingestion order. Variants without Hanja are left out.
func (s *Store) HanjaForWord(ctx context.Context, word string) ([]string, error) {
	var out []string
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			`SELECT hanja FROM korean_words
			 WHERE word = ? AND hanja IS NOT NULL AND hanja != ''
			 ORDER BY id`, word)
		if err != nil {
			return storageErr("querying hanja for word", err)
		}
		defer rows.Close()

		for rows.Next() {
			var h string
			if err := rows.Scan(&h); err != nil {
				return storageErr("scanning hanja", err)
			}
			out = append(out, h)
		}
		if err := rows.Err(); err != nil {
			return storageErr("reading hanja rows", err)
		}
		return nil
	})
	return out, err
}

// HanjaMeanings returns the reading and definition of each character of
// variant, in the order the characters appear in variant. Characters with
// no entry in the character table are omitted. word names the headword the
// variant belongs to; the lookup itself is driven by variant.
func (s *Store) HanjaMeanings(ctx context.Context, word, variant string, lang types.Language) ([]types.HanjaMeaning, error) {
	chars := distinctRunes(variant)
	if len(chars) == 0 {
		return nil, nil
	}

	found := make(map[string]types.HanjaMeaning, len(chars))
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		query := `SELECT character, korean, ` + hanjaColumn(lang) + ` FROM hanja_characters
			WHERE character IN (?` + strings.Repeat(", ?", len(chars)-1) + `)`
		args := make([]any, len(chars))
		for i, c := range chars {
			args[i] = c
		}

		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return storageErr("querying hanja meanings", err)
		}
		defer rows.Close()

		for rows.Next() {
			var m types.HanjaMeaning
			var def sql.NullString
			if err := rows.Scan(&m.Character, &m.Reading, &def); err != nil {
				return storageErr("scanning hanja meaning", err)
			}
			m.Definition = ptr(def)
			found[m.Character] = m
		}
		if err := rows.Err(); err != nil {
			return storageErr("reading hanja meaning rows", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// IN (...) comes back in storage order; restore the variant's order.
	var out []types.HanjaMeaning
	for _, r := range variant {
		if m, ok := found[string(r)]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// Glossary returns the glossary, lemma, definition and pronunciation of
// every row for word. A non-empty variant keeps only rows whose Hanja
// contains each of its characters.
func (s *Store) Glossary(ctx context.Context, word string, lang types.Language, variant string) ([]types.GlossaryRow, error) {
	lemmaCol, defCol := wordColumns(lang)

	var qb strings.Builder
	args := []any{word}
	qb.WriteString(`SELECT glossary, ` + lemmaCol + `, ` + defCol + `, pronunciation
		FROM korean_words WHERE word = ?`)
	for _, c := range distinctRunes(variant) {
		qb.WriteString(` AND instr(hanja, ?) > 0`)
		args = append(args, c)
	}
	qb.WriteString(` ORDER BY id`)

	var out []types.GlossaryRow
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, qb.String(), args...)
		if err != nil {
			return storageErr("querying glossary", err)
		}
		defer rows.Close()

		for rows.Next() {
			var gloss, lemma, def, pron sql.NullString
			if err := rows.Scan(&gloss, &lemma, &def, &pron); err != nil {
				return storageErr("scanning glossary", err)
			}
			out = append(out, types.GlossaryRow{
				Glossary:      ptr(gloss),
				Lemma:         ptr(lemma),
				Definition:    ptr(def),
				Pronunciation: ptr(pron),
			})
		}
		if err := rows.Err(); err != nil {
			return storageErr("reading glossary rows", err)
		}
		return nil
	})
	return out, err
}

// dedupKey is the first two characters of a Hanja string, or the whole
// string when it is shorter.
func dedupKey(hanja string) string {
	n := 0
	for i := range hanja {
		if n == 2 {
			return hanja[:i]
		}
		n++
	}
	return hanja
}

// RelatedWords returns words whose Hanja contains char, skipping rows for
// exclude when it is non-empty.
//
// Results are deduplicated on the first two characters of their Hanja:
// once a prefix has been returned, later rows sharing it are dropped even
// when their full Hanja or word differs. This collapses compounds built
// on the same root (大學, 大學生) into one result. It also drops distinct
// compounds that happen to share a prefix; see DESIGN.md.
func (s *Store) RelatedWords(ctx context.Context, char string, lang types.Language, exclude string) ([]types.RelatedWord, error) {
	if char == "" {
		return nil, nil
	}
	lemmaCol, defCol := wordColumns(lang)

	query := `SELECT word, hanja, glossary, ` + lemmaCol + `, ` + defCol + `
		FROM korean_words WHERE instr(hanja, ?) > 0`
	args := []any{char}
	if exclude != "" {
		query += ` AND word != ?`
		args = append(args, exclude)
	}
	query += ` ORDER BY id`

	var out []types.RelatedWord
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return storageErr("querying related words", err)
		}
		defer rows.Close()

		seen := make(map[string]bool)
		for rows.Next() {
			var rw types.RelatedWord
			var gloss, lemma, def sql.NullString
			if err := rows.Scan(&rw.Word, &rw.Hanja, &gloss, &lemma, &def); err != nil {
				return storageErr("scanning related word", err)
			}
			key := dedupKey(rw.Hanja)
			if seen[key] {
				continue
			}
			seen[key] = true

			rw.Glossary = ptr(gloss)
			rw.Lemma = ptr(lemma)
			rw.Definition = ptr(def)
			out = append(out, rw)
		}
		if err := rows.Err(); err != nil {
			return storageErr("reading related word rows", err)
		}
		return nil
	})
	return out, err
}

// WordsWithUniqueHanja returns, for every character used by exactly one
// distinct word, that (word, character) pair. It is an auditing aid for
// spotting suspicious origins in the source data. Results are sorted by
// character, then word.
func (s *Store) WordsWithUniqueHanja(ctx context.Context) ([]types.UniqueHanja, error) {
	users := make(map[string]map[string]bool)
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			`SELECT DISTINCT word, hanja FROM korean_words
			 WHERE hanja IS NOT NULL AND hanja != ''`)
		if err != nil {
			return storageErr("querying hanja usage", err)
		}
		defer rows.Close()

		for rows.Next() {
			var word, hanja string
			if err := rows.Scan(&word, &hanja); err != nil {
				return storageErr("scanning hanja usage", err)
			}
			for _, c := range distinctRunes(hanja) {
				if users[c] == nil {
					users[c] = make(map[string]bool)
				}
				users[c][word] = true
			}
		}
		if err := rows.Err(); err != nil {
			return storageErr("reading hanja usage rows", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out []types.UniqueHanja
	for c, words := range users {
		if len(words) != 1 {
			continue
		}
		for w := range words {
			out = append(out, types.UniqueHanja{Word: w, Character: c})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Character != out[j].Character {
			return out[i].Character < out[j].Character
		}
		return out[i].Word < out[j].Word
	})
	return out, nil
}
