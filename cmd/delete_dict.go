package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yomidict"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <dictionary-title>",
	Short: "Delete an imported dictionary and all of its records",
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

		if err := h.DeleteDictionary(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete %s: %w", args[0], err)
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
