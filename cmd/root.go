// Command yomidict is the CLI front-end over the embeddable engine:
// import archives, list/delete dictionaries, and run one-shot
// lookups/scans against a local sqlite store. Each subcommand loads
// config via viper, builds its own dependencies, and reports failures
// through RunE rather than log.Fatal.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"yomidict/internal/applog"
	"yomidict/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "yomidict",
	Short: "Embeddable offline dictionary lookup and deinflection engine",
	Long: `yomidict imports Yomichan-schema dictionary archives into a local
sqlite store and performs deinflection-aware term lookups and sentence
scans against it, entirely offline.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "path to the sqlite store (overrides store.path / YOMIDICT_STORE_PATH)")
	_ = viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("db"))
}

// loadConfigAndLogger loads config and builds a logger, the shared
// setup every subcommand needs before constructing its dependencies.
func loadConfigAndLogger() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := applog.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
