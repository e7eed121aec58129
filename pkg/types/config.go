// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StoreConfig holds settings for the SQLite store.
type StoreConfig struct {
	// Path is the database file. Parent directories are created on open.
	Path string `json:"db" yaml:"db"`
}

// IngestConfig holds settings for the batch ingestion run.
type IngestConfig struct {
	// DocumentsDir holds the per-entry dictionary JSON documents.
	DocumentsDir string `json:"documents_dir" yaml:"documents_dir"`

	// HanjaFile is the character table, either hanja.txt lines or YAML.
	HanjaFile string `json:"hanja_file" yaml:"hanja_file"`

	// HanjaURL is where fetch-hanja downloads HanjaFile from.
	HanjaURL string `json:"hanja_url,omitempty" yaml:"hanja_url,omitempty"`
}

// Config groups all settings read from hanja-lexicon.yaml.
type Config struct {
	Store  StoreConfig  `json:"store" yaml:"store"`
	Ingest IngestConfig `json:"ingest" yaml:"ingest"`
}
