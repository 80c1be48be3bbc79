package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yomidict"
	"yomidict/pkg/queryfilter"
)

var dictionariesFilter string

var dictionariesCmd = &cobra.Command{
	Use:   "dictionaries",
	Short: "List imported dictionaries, optionally filtered by a CEL expression",
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

		summaries, err := h.ListDictionaries(cmd.Context())
		if err != nil {
			return fmt.Errorf("list dictionaries: %w", err)
		}

		summaries, err = queryfilter.Filter(summaries, dictionariesFilter)
		if err != nil {
			return err
		}

		for _, s := range summaries {
			fmt.Printf("%-24s rev=%-16s terms=%-8d kanji=%-6d sequenced=%v\n",
				s.Title, s.Revision, s.TermCount, s.KanjiCount, s.Sequenced)
		}
		return nil
	},
}

func init() {
	dictionariesCmd.Flags().StringVar(&dictionariesFilter, "filter", "", `CEL boolean expression over title/revision/author/terms/kanji/... (e.g. terms > 0 && sequenced)`)
	rootCmd.AddCommand(dictionariesCmd)
}
