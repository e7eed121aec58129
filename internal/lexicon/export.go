// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hanja-lexicon/pkg/types"
)

// Words returns every stored WordRecord in ingestion order.
func (s *Store) Words(ctx context.Context) ([]types.WordRecord, error) {
	var out []types.WordRecord
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			`SELECT word, hanja, glossary, english_lemma, english_definition,
				french_lemma, french_definition, pronunciation
			 FROM korean_words ORDER BY id`)
		if err != nil {
			return storageErr("querying words", err)
		}
		defer rows.Close()

		for rows.Next() {
			var r types.WordRecord
			var hanja, gloss, enLemma, enDef, frLemma, frDef, pron sql.NullString
			if err := rows.Scan(&r.Word, &hanja, &gloss, &enLemma, &enDef, &frLemma, &frDef, &pron); err != nil {
				return storageErr("scanning word", err)
			}
			r.Hanja = ptr(hanja)
			r.KoreanGlossary = ptr(gloss)
			r.EnglishLemma = ptr(enLemma)
			r.EnglishDefinition = ptr(enDef)
			r.FrenchLemma = ptr(frLemma)
			r.FrenchDefinition = ptr(frDef)
			r.Pronunciation = ptr(pron)
			out = append(out, r)
		}
		if err := rows.Err(); err != nil {
			return storageErr("reading word rows", err)
		}
		return nil
	})
	return out, err
}

// ExportYAML writes every word row to path as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	words, err := s.Words(ctx)
	if err != nil {
		return err
	}
	if words == nil {
		words = []types.WordRecord{}
	}
	data, err := yaml.Marshal(words)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every word row to path as an indented JSON array.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	words, err := s.Words(ctx)
	if err != nil {
		return err
	}
	if words == nil {
		words = []types.WordRecord{}
	}
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
