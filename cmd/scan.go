package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yomidict"
)

var scanCursor int

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Scan a text file at a cursor position and print the matched terms plus sentence context",
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

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		opts, err := buildLookupOptions(cmd.Context(), h, "group", "exact")
		if err != nil {
			return err
		}

		result, err := h.Scanner().Search(cmd.Context(), string(data), scanCursor, opts)
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		if result == nil {
			fmt.Println("(no match at cursor)")
			return nil
		}

		fmt.Printf("sentence: %q (offset %d)\n", result.Sentence.Text, result.Sentence.Offset)
		printEntries(result.Entries)
		return nil
	},
}

func init() {
	scanCmd.Flags().IntVar(&scanCursor, "cursor", 0, "character cursor index into the file")
	rootCmd.AddCommand(scanCmd)
}
