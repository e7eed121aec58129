// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hanjafile loads the Hanja character table.
//
// Two formats are read. The text format is the classic hanja.txt layout:
//
//	[가]
//	家=가, house, family
//	價=가, 값, price, value
//
// Bracketed lines name a reading group and carry no data. Each other line
// is a character, '=', then comma-separated parts; parts containing
// Hangul are readings and the rest are definitions. The YAML format maps
// each character to its fields directly:
//
//	家: {reading: 가, en: house, fr: maison}
package hanjafile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hanja-lexicon/internal/httputil"
	"github.com/pdiddy/hanja-lexicon/pkg/types"
)

// Load reads path as YAML when its extension is .yaml or .yml and as the
// text format otherwise.
func Load(path string) (map[string]types.HanjaRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening hanja file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return ParseText(f)
	}
}

// ParseText reads the hanja.txt format. When a character appears more than
// once, the first line wins.
func ParseText(r io.Reader) (map[string]types.HanjaRecord, error) {
	out := make(map[string]types.HanjaRecord)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || (strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]")) {
			continue
		}
		char, rest, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		char = strings.TrimSpace(char)
		if char == "" {
			continue
		}
		if _, seen := out[char]; seen {
			continue
		}

		var readings, defs []string
		for _, part := range strings.Split(rest, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if hasHangul(part) {
				readings = append(readings, part)
			} else {
				defs = append(defs, part)
			}
		}

		out[char] = types.HanjaRecord{
			Character:         char,
			KoreanReading:     strings.Join(readings, ", "),
			EnglishDefinition: types.StringPtr(strings.Join(defs, ", ")),
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading hanja text: %w", err)
	}
	return out, nil
}

func hasHangul(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}

// ParseYAML reads a mapping of character to record fields. The character
// key fills Character when the value omits it.
func ParseYAML(r io.Reader) (map[string]types.HanjaRecord, error) {
	var raw map[string]types.HanjaRecord
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return map[string]types.HanjaRecord{}, nil
		}
		return nil, fmt.Errorf("parsing hanja YAML: %w", err)
	}

	out := make(map[string]types.HanjaRecord, len(raw))
	for char, rec := range raw {
		rec.Character = char
		out[char] = rec
	}
	return out, nil
}

// Fetch downloads url to dest. The file is written beside dest and renamed
// into place so a failed download leaves any previous copy intact.
func Fetch(ctx context.Context, client *http.Client, url, dest string) (int64, error) {
	body, err := httputil.Get(ctx, client, url)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".hanja-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, body)
	if err != nil {
		tmp.Close()
		return 0, fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, fmt.Errorf("renaming into %s: %w", dest, err)
	}
	return n, nil
}
