package cli

import (
	"fmt"

	"github.com/felixgeelhaar/repocat/internal/infrastructure/config"
	"github.com/felixgeelhaar/repocat/internal/infrastructure/wiring"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func runReport(cmd *cobra.Command, g *globalOptions, opts *reportOptions) error {
	cfg, err := resolveConfig(cmd, g, opts)
	if err != nil {
		return err
	}
	log := newLogger(cmd.ErrOrStderr(), cfg.Debug)
	logSettings(log, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	services, err := wiring.BuildAppServices(cfg, log)
	if err != nil {
		return err
	}

	run, err := services.Catalog.Publish(cmd.Context(), cfg.Org)
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	printRunSummary(cmd.OutOrStdout(), run)
	return nil
}

func logSettings(log *logrus.Logger, cfg *config.Config) {
	log.WithFields(logrus.Fields{
		"org":              cfg.Org,
		"output_dir":       cfg.OutputDir,
		"input":            cfg.Input,
		"api_url":          cfg.APIURL,
		"authenticated":    cfg.Token != "",
		"independent_tags": cfg.Classification.Policy().IndependentTags,
	}).Debug("settings")
}
