// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the hanja-lexicon CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hanja-lexicon/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Configuration keys, shared by flags, the config file, and the
// HANJA_LEXICON_* environment variables.
const (
	keyDB           = "db"
	keyDocumentsDir = "documents_dir"
	keyHanjaFile    = "hanja_file"
	keyHanjaURL     = "hanja_url"
)

var rootCmd = &cobra.Command{
	Use:   "hanja-lexicon",
	Short: "Hanja-indexed Korean dictionary store",
	Long: `hanja-lexicon ingests Korean Basic Dictionary JSON documents and a Hanja
character table into a SQLite store, then answers lookups over it: which
Hanja compose a word and what they mean, and which other words share one
of those characters.

Run ingest first; the query commands read the store it builds.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./hanja-lexicon.yaml or ~/.config/hanja-lexicon/config.yaml)")
	flags.String("db", "", "SQLite database path (default database/korean_learning.db)")
	flags.String("documents-dir", "", "directory of dictionary JSON documents (default data/documents)")
	flags.String("hanja-file", "", "Hanja character table, hanja.txt or YAML (default data/hanja.txt)")

	viper.BindPFlag(keyDB, flags.Lookup("db"))
	viper.BindPFlag(keyDocumentsDir, flags.Lookup("documents-dir"))
	viper.BindPFlag(keyHanjaFile, flags.Lookup("hanja-file"))

	viper.SetDefault(keyDB, filepath.Join("database", "korean_learning.db"))
	viper.SetDefault(keyDocumentsDir, filepath.Join("data", "documents"))
	viper.SetDefault(keyHanjaFile, filepath.Join("data", "hanja.txt"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hanja-lexicon")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "hanja-lexicon"))
		}
	}

	viper.SetEnvPrefix("HANJA_LEXICON")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the effective configuration from flags, the config
// file, the environment, and defaults, in viper's precedence order.
func loadConfig() types.Config {
	return types.Config{
		Store: types.StoreConfig{
			Path: viper.GetString(keyDB),
		},
		Ingest: types.IngestConfig{
			DocumentsDir: viper.GetString(keyDocumentsDir),
			HanjaFile:    viper.GetString(keyHanjaFile),
			HanjaURL:     viper.GetString(keyHanjaURL),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
