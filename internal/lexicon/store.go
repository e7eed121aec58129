// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lexicon persists WordRecords and HanjaRecords in SQLite and
// answers Hanja-centric lookups over them.
//
// Every operation takes its own connection and releases it before
// returning; the Store keeps no connection open between calls.
package lexicon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/hanja-lexicon/pkg/types"
)

// ErrStorageUnavailable wraps every failure of the storage engine. Lookups
// that match nothing are not errors.
var ErrStorageUnavailable = errors.New("storage unavailable")

const (
	wordsTable = "korean_words"
	hanjaTable = "hanja_characters"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS korean_words (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		word TEXT NOT NULL,
		hanja TEXT,
		glossary TEXT,
		english_lemma TEXT,
		english_definition TEXT,
		french_lemma TEXT,
		french_definition TEXT,
		pronunciation TEXT
	)`,
	// NULL hanja would never collide in a plain UNIQUE index.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_korean_words_word_hanja
		ON korean_words(word, IFNULL(hanja, ''))`,
	`CREATE TABLE IF NOT EXISTS hanja_characters (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		character TEXT NOT NULL UNIQUE,
		korean TEXT NOT NULL,
		english_definition TEXT,
		french_definition TEXT,
		pronunciation TEXT
	)`,
}

// Store is the SQLite-backed word and character store.
type Store struct {
	db   *sql.DB
	path string
}

// Open prepares the database at cfg.Path, creating parent directories and
// any missing tables. Existing data is kept; call Rebuild to start over.
func Open(ctx context.Context, cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, storageErr("opening database", errors.New("database path is required"))
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, storageErr("creating database directory", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, storageErr("opening database", err)
	}
	db.SetMaxIdleConns(0)

	s := &Store{db: db, path: cfg.Path}
	err = s.withConn(ctx, func(conn *sql.Conn) error {
		return createSchema(ctx, conn)
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenExisting opens a store that ingest has already created. Unlike Open
// it never creates the file, so a mistyped path is reported instead of
// yielding an empty store.
func OpenExisting(ctx context.Context, cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, storageErr("opening database", errors.New("database path is required"))
	}
	info, err := os.Stat(cfg.Path)
	if err != nil {
		return nil, storageErr("opening database", fmt.Errorf("%s: %w (run ingest first)", cfg.Path, err))
	}
	if info.IsDir() {
		return nil, storageErr("opening database", fmt.Errorf("%s is a directory", cfg.Path))
	}
	return Open(ctx, cfg)
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// withConn runs fn on a dedicated connection, released on every path.
func (s *Store) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return storageErr("acquiring connection", err)
	}
	defer conn.Close()
	return fn(conn)
}

// withTx runs fn inside a transaction on a dedicated connection.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return storageErr("beginning transaction", err)
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return storageErr("committing", err)
		}
		return nil
	})
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func createSchema(ctx context.Context, db execer) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return storageErr("creating schema", err)
		}
	}
	return nil
}

// Rebuild drops both tables and recreates them empty.
func (s *Store) Rebuild(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{hanjaTable, wordsTable} {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+table); err != nil {
				return storageErr("dropping "+table, err)
			}
		}
		return createSchema(ctx, tx)
	})
}

// InsertWords adds records that are not already present by (word, hanja).
// Existing rows are left untouched. It returns the number of rows added.
func (s *Store) InsertWords(ctx context.Context, records []types.WordRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var inserted int
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT OR IGNORE INTO korean_words
				(word, hanja, glossary, english_lemma, english_definition,
				 french_lemma, french_definition, pronunciation)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return storageErr("preparing word insert", err)
		}
		defer stmt.Close()

		for _, r := range records {
			res, err := stmt.ExecContext(ctx,
				r.Word, nullable(r.Hanja), nullable(r.KoreanGlossary),
				nullable(r.EnglishLemma), nullable(r.EnglishDefinition),
				nullable(r.FrenchLemma), nullable(r.FrenchDefinition),
				nullable(r.Pronunciation),
			)
			if err != nil {
				return storageErr("inserting word "+r.Word, err)
			}
			n, _ := res.RowsAffected()
			inserted += int(n)
		}
		return nil
	})
	return inserted, err
}

// InsertHanja adds characters not already present. Characters are written
// in sorted order so row ids are stable across runs.
func (s *Store) InsertHanja(ctx context.Context, chars map[string]types.HanjaRecord) (int, error) {
	if len(chars) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(chars))
	for k := range chars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var inserted int
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT OR IGNORE INTO hanja_characters
				(character, korean, english_definition, french_definition, pronunciation)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return storageErr("preparing hanja insert", err)
		}
		defer stmt.Close()

		for _, char := range keys {
			rec := chars[char]
			res, err := stmt.ExecContext(ctx,
				char, rec.KoreanReading,
				nullable(rec.EnglishDefinition), nullable(rec.FrenchDefinition),
				nullable(rec.Pronunciation),
			)
			if err != nil {
				return storageErr("inserting hanja "+char, err)
			}
			n, _ := res.RowsAffected()
			inserted += int(n)
		}
		return nil
	})
	return inserted, err
}

// nullable maps nil and empty strings to SQL NULL.
func nullable(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// ptr converts a scanned column back to an optional string.
func ptr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
