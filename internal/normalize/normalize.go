// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize flattens Korean Basic Dictionary JSON documents into
// WordRecords.
//
// The dictionary export is loose about shape: Lemma, feat, Sense,
// Equivalent and WordForm each appear as a single object in some entries
// and as a list in others. Every reader in this package goes through
// asList so the extraction code only ever sees lists.
package normalize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/hanja-lexicon/pkg/types"
)

// ErrMalformedDocument marks a document that could not be read or decoded.
var ErrMalformedDocument = errors.New("malformed document")

// DocumentError identifies the document a decode failure came from.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() []error {
	return []error{ErrMalformedDocument, e.Err}
}

// Result holds the records of a directory read and the documents skipped.
type Result struct {
	Records []types.WordRecord
	Skipped []*DocumentError
	Files   int
}

// ReadDir parses every .json document in dir in filename order. A document
// that fails to parse is recorded in Result.Skipped and the rest of the
// batch continues. Only an unreadable directory or a cancelled context
// returns an error.
func ReadDir(ctx context.Context, dir string) (Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{}, fmt.Errorf("reading documents directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var res Result
	for _, name := range names {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		path := filepath.Join(dir, name)
		records, err := parseFile(path)
		res.Files++
		if err != nil {
			res.Skipped = append(res.Skipped, &DocumentError{Path: path, Err: err})
			continue
		}
		res.Records = append(res.Records, records...)
	}
	return res, nil
}

func parseFile(path string) ([]types.WordRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDocument(f)
}

// ParseDocument decodes one JSON document and extracts its entries.
func ParseDocument(r io.Reader) ([]types.WordRecord, error) {
	var tree any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if err := dec.Decode(new(any)); err != io.EOF {
		if err == nil {
			err = errors.New("more than one JSON value")
		}
		return nil, fmt.Errorf("trailing data after JSON document: %w", err)
	}
	return ExtractEntries(tree), nil
}

// ExtractEntries finds every LexicalEntry in a decoded tree, however
// deeply nested, and returns one record per entry that has a surface word.
func ExtractEntries(tree any) []types.WordRecord {
	var out []types.WordRecord
	for _, entry := range findEntries(tree) {
		rec, ok := extractEntry(entry)
		if ok {
			out = append(out, rec)
		}
	}
	return out
}

// findEntries walks the tree depth-first. Map keys are visited in sorted
// order so nested lexicons come out deterministically.
func findEntries(node any) []map[string]any {
	var out []map[string]any
	switch v := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if k == keyLexicalEntry {
				for _, e := range asList(v[k]) {
					if m, ok := e.(map[string]any); ok {
						out = append(out, m)
					}
				}
				continue
			}
			out = append(out, findEntries(v[k])...)
		}
	case []any:
		for _, child := range v {
			out = append(out, findEntries(child)...)
		}
	}
	return out
}

// asList normalizes the single-object-or-list duality. nil yields an empty
// list, a list is returned as is, and anything else is wrapped.
func asList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

// asMaps is asList restricted to objects; scalars mixed into a list are
// dropped.
func asMaps(v any) []map[string]any {
	var out []map[string]any
	for _, e := range asList(v) {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// featValue scans a feat field for att == name and returns its val.
func featValue(feat any, name string) (string, bool) {
	for _, f := range asMaps(feat) {
		if att, _ := f["att"].(string); att != name {
			continue
		}
		if val, ok := stringValue(f["val"]); ok {
			return val, true
		}
	}
	return "", false
}

// stringValue accepts strings and numbers; the export encodes some
// numeric attributes as JSON numbers.
func stringValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}
