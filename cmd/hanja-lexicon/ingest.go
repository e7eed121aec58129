// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hanja-lexicon/internal/hanjafile"
	"github.com/pdiddy/hanja-lexicon/internal/lexicon"
)

const fetchTimeout = 60 * time.Second

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Rebuild the store from dictionary documents and the Hanja table",
	Long: `Ingest drops both tables, reads every .json document in the documents
directory, and loads the Hanja character table. Documents that fail to
parse are reported and skipped; the rest of the batch continues.`,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	ctx := context.Background()

	if _, err := os.Stat(cfg.Ingest.HanjaFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: hanja file %s not found, loading words only\n", cfg.Ingest.HanjaFile)
		cfg.Ingest.HanjaFile = ""
	}

	store, err := lexicon.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.Ingest(ctx, cfg.Ingest, cmd.OutOrStdout()); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("export")
	switch format {
	case "":
		return nil
	case "yaml":
		path := filepath.Join(filepath.Dir(cfg.Store.Path), "export.yaml")
		if err := store.ExportYAML(ctx, path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
	case "json":
		path := filepath.Join(filepath.Dir(cfg.Store.Path), "export.json")
		if err := store.ExportJSON(ctx, path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	return nil
}

var fetchHanjaCmd = &cobra.Command{
	Use:   "fetch-hanja [url]",
	Short: "Download the Hanja character table",
	Long: `Fetch-hanja downloads the Hanja character table to the configured
hanja file. The URL comes from the argument or the hanja_url setting.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetchHanja,
}

func runFetchHanja(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	url := cfg.Ingest.HanjaURL
	if len(args) > 0 {
		url = args[0]
	}
	if url == "" {
		return fmt.Errorf("provide a URL or set hanja_url")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	client := &http.Client{Timeout: timeout}

	n, err := hanjafile.Fetch(context.Background(), client, url, cfg.Ingest.HanjaFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", n, cfg.Ingest.HanjaFile)
	return nil
}

func init() {
	ingestCmd.Flags().String("export", "", "after ingesting, export words next to the database: yaml or json")
	fetchHanjaCmd.Flags().Duration("timeout", fetchTimeout, "HTTP request timeout")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(fetchHanjaCmd)
}
