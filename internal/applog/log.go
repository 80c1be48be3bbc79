// Package applog builds the logrus logger shared by the CLI and the
// importer/translator packages.
package applog

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"yomidict/internal/config"
)

// New builds a configured logrus logger from application config.
func New(cfg *config.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}
