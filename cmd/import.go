package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yomidict"
	"yomidict/internal/dictimport"
)

var importBatchSize int
var importPrefixWildcards bool

var importCmd = &cobra.Command{
	Use:   "import <archive.zip>...",
	Short: "Import one or more Yomichan-schema dictionary archives",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfigAndLogger()
		if err != nil {
			return err
		}

		h, err := yomidict.OpenWithConfig(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer h.Close()

		opts := dictimport.Options{
			BatchSize:                importBatchSize,
			Logger:                   logger,
			PrefixWildcardsSupported: importPrefixWildcards,
			OnProgress: func(p dictimport.Progress) {
				logger.Infof("imported %d records from %s so far", p.RecordsSoFar, p.File)
			},
		}

		summaries, err := h.ImportDictionaries(cmd.Context(), args, opts)
		for _, s := range summaries {
			fmt.Printf("%s: %d terms, %d kanji\n", s.Title, s.TermCount, s.KanjiCount)
		}
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	importCmd.Flags().IntVar(&importBatchSize, "batch", dictimport.DefaultBatchSize, "progress-report batch size")
	importCmd.Flags().BoolVar(&importPrefixWildcards, "prefix-wildcards", true, "record prefix-wildcard support in the dictionary summary")
	rootCmd.AddCommand(importCmd)
}
