// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hanja-lexicon/internal/lexicon"
	"github.com/pdiddy/hanja-lexicon/pkg/types"
)

// --- hanja subcommand ---

var hanjaCmd = &cobra.Command{
	Use:   "hanja <word>",
	Short: "List the Hanja variants recorded for a word",
	Args:  cobra.ExactArgs(1),
	RunE:  runHanja,
}

func runHanja(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, store *lexicon.Store, w io.Writer) error {
		variants, err := store.HanjaForWord(ctx, args[0])
		if err != nil {
			return err
		}
		return output(cmd, w, variants, func() {
			for _, v := range variants {
				fmt.Fprintln(w, v)
			}
		}, len(variants))
	})
}

// --- meanings subcommand ---

var meaningsCmd = &cobra.Command{
	Use:   "meanings <word> [hanja]",
	Short: "Show the reading and meaning of each Hanja in a word",
	Long: `Meanings prints one line per character, in the character order of the
Hanja string. Without a Hanja argument every variant of the word is shown.
Characters missing from the Hanja table are left out.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMeanings,
}

type variantMeanings struct {
	Hanja    string               `json:"hanja"`
	Meanings []types.HanjaMeaning `json:"meanings"`
}

func runMeanings(cmd *cobra.Command, args []string) error {
	lang, err := langFlag(cmd)
	if err != nil {
		return err
	}
	return withStore(cmd, func(ctx context.Context, store *lexicon.Store, w io.Writer) error {
		word := args[0]
		variants := args[1:]
		if len(variants) == 0 {
			if variants, err = store.HanjaForWord(ctx, word); err != nil {
				return err
			}
		}

		var results []variantMeanings
		for _, v := range variants {
			meanings, err := store.HanjaMeanings(ctx, word, v, lang)
			if err != nil {
				return err
			}
			if len(meanings) > 0 {
				results = append(results, variantMeanings{Hanja: v, Meanings: meanings})
			}
		}

		return output(cmd, w, results, func() {
			for _, r := range results {
				fmt.Fprintf(w, "%s\n", r.Hanja)
				for _, m := range r.Meanings {
					fmt.Fprintf(w, "  %s  %-6s  %s\n", m.Character, m.Reading, types.Deref(m.Definition))
				}
			}
		}, len(results))
	})
}

// --- glossary subcommand ---

var glossaryCmd = &cobra.Command{
	Use:   "glossary <word>",
	Short: "Show the glossary and translation of a word",
	Args:  cobra.ExactArgs(1),
	RunE:  runGlossary,
}

func runGlossary(cmd *cobra.Command, args []string) error {
	lang, err := langFlag(cmd)
	if err != nil {
		return err
	}
	variant, _ := cmd.Flags().GetString("hanja")

	return withStore(cmd, func(ctx context.Context, store *lexicon.Store, w io.Writer) error {
		rows, err := store.Glossary(ctx, args[0], lang, variant)
		if err != nil {
			return err
		}
		return output(cmd, w, rows, func() {
			for i, r := range rows {
				fmt.Fprintf(w, "%d. %s\n", i+1, types.Deref(r.Glossary))
				if r.Lemma != nil || r.Definition != nil {
					fmt.Fprintf(w, "   %s: %s\n", types.Deref(r.Lemma), types.Deref(r.Definition))
				}
				if r.Pronunciation != nil {
					fmt.Fprintf(w, "   audio: %s\n", *r.Pronunciation)
				}
			}
		}, len(rows))
	})
}

// --- related subcommand ---

var relatedCmd = &cobra.Command{
	Use:   "related <character>",
	Short: "List words that share a Hanja character",
	Long: `Related lists words whose Hanja contains the character. Words sharing
the same first two Hanja with an earlier result are folded into it.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelated,
}

func runRelated(cmd *cobra.Command, args []string) error {
	lang, err := langFlag(cmd)
	if err != nil {
		return err
	}
	exclude, _ := cmd.Flags().GetString("exclude")

	return withStore(cmd, func(ctx context.Context, store *lexicon.Store, w io.Writer) error {
		words, err := store.RelatedWords(ctx, args[0], lang, exclude)
		if err != nil {
			return err
		}
		return output(cmd, w, words, func() {
			fmt.Fprintf(w, "%-12s  %-8s  %-30s  %s\n", "Word", "Hanja", "Lemma", "Glossary")
			fmt.Fprintln(w, strings.Repeat("-", 80))
			for _, r := range words {
				fmt.Fprintf(w, "%-12s  %-8s  %-30s  %s\n",
					r.Word, r.Hanja, truncate(types.Deref(r.Lemma), 30), types.Deref(r.Glossary))
			}
			fmt.Fprintf(w, "\n%d results\n", len(words))
		}, len(words))
	})
}

// --- audit subcommand ---

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List Hanja characters used by exactly one word",
	RunE:  runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, store *lexicon.Store, w io.Writer) error {
		pairs, err := store.WordsWithUniqueHanja(ctx)
		if err != nil {
			return err
		}
		return output(cmd, w, pairs, func() {
			for _, p := range pairs {
				fmt.Fprintf(w, "%s  %s\n", p.Character, p.Word)
			}
			fmt.Fprintf(w, "\n%d characters used by a single word\n", len(pairs))
		}, len(pairs))
	})
}

// --- export subcommand ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the word table to YAML or JSON",
	Long: `Export writes every word row to export.yaml or export.json next to the
database, or to --out when given.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	return withStore(cmd, func(ctx context.Context, store *lexicon.Store, w io.Writer) error {
		if out == "" {
			out = filepath.Join(filepath.Dir(store.Path()), "export."+format)
		}
		switch format {
		case "yaml":
			if err := store.ExportYAML(ctx, out); err != nil {
				return err
			}
		case "json":
			if err := store.ExportJSON(ctx, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		fmt.Fprintln(w, "Exported to", out)
		return nil
	})
}

// --- shared helpers ---

func withStore(cmd *cobra.Command, fn func(ctx context.Context, store *lexicon.Store, w io.Writer) error) error {
	ctx := context.Background()
	store, err := lexicon.OpenExisting(ctx, loadConfig().Store)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(ctx, store, cmd.OutOrStdout())
}

func langFlag(cmd *cobra.Command) (types.Language, error) {
	lang, _ := cmd.Flags().GetString("lang")
	return types.ParseLanguage(lang)
}

// output prints v as JSON with --json, otherwise runs text. An empty
// result is not an error.
func output(cmd *cobra.Command, w io.Writer, v any, text func(), n int) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if n == 0 {
			return enc.Encode([]any{})
		}
		return enc.Encode(v)
	}
	if n == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}
	text()
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	for _, c := range []*cobra.Command{hanjaCmd, meaningsCmd, glossaryCmd, relatedCmd, auditCmd} {
		c.Flags().Bool("json", false, "output results as JSON")
	}
	for _, c := range []*cobra.Command{meaningsCmd, glossaryCmd, relatedCmd} {
		c.Flags().String("lang", string(types.English), "translation language: en or fr")
	}
	glossaryCmd.Flags().String("hanja", "", "only rows whose Hanja contains every character of this variant")
	relatedCmd.Flags().String("exclude", "", "word to leave out of the results")
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("out", "", "output path (default: export.<format> next to the database)")

	rootCmd.AddCommand(hanjaCmd, meaningsCmd, glossaryCmd, relatedCmd, auditCmd, exportCmd)
}
