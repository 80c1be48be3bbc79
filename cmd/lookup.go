package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"yomidict"
	"yomidict/internal/dictentry"
	"yomidict/internal/options"
	"yomidict/internal/structcontent"
)

var (
	lookupMode      string
	lookupMatchType string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <text>",
	Short: "Run a one-shot term lookup against every imported dictionary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfigAndLogger()
		if err != nil {
			return err
		}

		h, err := yomidict.OpenWithConfig(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer h.Close()

		opts, err := buildLookupOptions(cmd.Context(), h, lookupMode, lookupMatchType)
		if err != nil {
			return err
		}

		result, err := h.FindTerms(cmd.Context(), args[0], opts)
		if err != nil {
			return fmt.Errorf("find terms: %w", err)
		}
		printEntries(result.Entries)
		return nil
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupMode, "mode", "group", "lookup mode: simple|group|merge|split")
	lookupCmd.Flags().StringVar(&lookupMatchType, "match", "exact", "match type: exact|prefix|suffix")
	rootCmd.AddCommand(lookupCmd)
}

// buildLookupOptions enables every imported dictionary, its priority
// Index being its position in ListDictionaries' title order, with
// deinflection on, matching options.Default's
// Japanese-friendly baseline, then applies the requested mode/match
// type flags.
func buildLookupOptions(ctx context.Context, h *yomidict.Handle, mode, matchType string) (options.ProfileOptions, error) {
	opts := options.Default()

	summaries, err := h.ListDictionaries(ctx)
	if err != nil {
		return opts, fmt.Errorf("list dictionaries: %w", err)
	}
	for i, s := range summaries {
		opts.EnabledDictionaryMap[s.Title] = options.DictionaryEntry{Index: i, UseDeinflections: true}
	}

	parsedMode, err := parseMode(mode)
	if err != nil {
		return opts, err
	}
	opts.Mode = parsedMode

	parsedMatch, err := parseMatchType(matchType)
	if err != nil {
		return opts, err
	}
	opts.MatchType = parsedMatch

	if opts.Mode == options.ModeMerge && opts.MainDictionary == "" && len(summaries) > 0 {
		opts.MainDictionary = summaries[0].Title
	}

	return opts, nil
}

func parseMode(s string) (options.Mode, error) {
	switch strings.ToLower(s) {
	case "simple":
		return options.ModeSimple, nil
	case "group":
		return options.ModeGroup, nil
	case "merge":
		return options.ModeMerge, nil
	case "split":
		return options.ModeSplit, nil
	default:
		return options.ModeGroup, fmt.Errorf("unknown mode %q (want simple|group|merge|split)", s)
	}
}

func parseMatchType(s string) (dictentry.MatchType, error) {
	switch strings.ToLower(s) {
	case "exact":
		return dictentry.MatchExact, nil
	case "prefix":
		return dictentry.MatchPrefix, nil
	case "suffix":
		return dictentry.MatchSuffix, nil
	default:
		return dictentry.MatchExact, fmt.Errorf("unknown match type %q (want exact|prefix|suffix)", s)
	}
}

func printEntries(entries []*dictentry.TermDictionaryEntry) {
	if len(entries) == 0 {
		fmt.Println("(no results)")
		return
	}
	for i, e := range entries {
		head := e.Headwords[0]
		fmt.Printf("%d. %s", i+1, head.Term)
		if head.Reading != "" && head.Reading != head.Term {
			fmt.Printf(" [%s]", head.Reading)
		}
		fmt.Println()
		for _, def := range e.Definitions {
			for _, g := range def.Glossary {
				if g.Kind == dictentry.GlossaryKindContent {
					fmt.Printf("   - (%s) %s\n", def.Dictionary, strings.Join(plainGlossaryText(g.Content), "; "))
				}
			}
		}
	}
}

// plainGlossaryText renders one TermGlossary's content payload as
// plain text for terminal display, using the same structcontent.Glossary
// shape and CollectText helper the importer uses to synthesize
// PlainDefinition at import time.
func plainGlossaryText(g structcontent.Glossary) []string {
	switch g.Kind {
	case structcontent.KindText:
		return []string{g.Text}
	case structcontent.KindStructuredContent:
		return structcontent.CollectText(g.Content)
	default:
		return nil
	}
}
