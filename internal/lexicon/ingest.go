// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/hanja-lexicon/internal/hanjafile"
	"github.com/pdiddy/hanja-lexicon/internal/normalize"
	"github.com/pdiddy/hanja-lexicon/pkg/types"
)

// IngestSummary holds counts from one ingestion run.
type IngestSummary struct {
	Documents int
	Words     int
	Hanja     int
	Skipped   int
}

// Ingest rebuilds the store from scratch: it drops both tables, loads every
// document in cfg.DocumentsDir and, when cfg.HanjaFile is set, the
// character table. Malformed documents are reported to w and skipped.
// Running it twice over the same inputs yields the same content.
func (s *Store) Ingest(ctx context.Context, cfg types.IngestConfig, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	if err := s.Rebuild(ctx); err != nil {
		return summary, fmt.Errorf("rebuilding tables: %w", err)
	}

	res, err := normalize.ReadDir(ctx, cfg.DocumentsDir)
	if err != nil {
		return summary, err
	}
	summary.Documents = res.Files
	summary.Skipped = len(res.Skipped)
	for _, skipped := range res.Skipped {
		fmt.Fprintf(w, "skipped %s: %v\n", skipped.Path, skipped.Err)
	}

	summary.Words, err = s.InsertWords(ctx, res.Records)
	if err != nil {
		return summary, err
	}
	if dup := len(res.Records) - summary.Words; dup > 0 {
		fmt.Fprintf(w, "ignored %d duplicate (word, hanja) rows\n", dup)
	}

	if cfg.HanjaFile != "" {
		chars, err := hanjafile.Load(cfg.HanjaFile)
		if err != nil {
			return summary, err
		}
		summary.Hanja, err = s.InsertHanja(ctx, chars)
		if err != nil {
			return summary, err
		}
	}

	fmt.Fprintf(w, "documents: %d, words: %d, hanja: %d, skipped: %d\n",
		summary.Documents, summary.Words, summary.Hanja, summary.Skipped)
	return summary, nil
}
