package cli

import (
	"time"

	"github.com/felixgeelhaar/repocat/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	org           string
	outputDir     string
	input         string
	exclusiveTags bool
	timeout       time.Duration
}

func addReportFlags(cmd *cobra.Command, opts *reportOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.org, "org", "", "GitHub organization name")
	f.StringVar(&opts.outputDir, "output-dir", "", "existing directory the JSON reports are written to")
	f.StringVar(&opts.input, "input", "", "classify a saved snapshot instead of calling the API")
	f.BoolVar(&opts.exclusiveTags, "exclusive-tags", false, "list a repository tagged both cloudformation and terraform under cloudformation only")
	f.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout for GitHub API calls (default 30s)")
}

// resolveConfig layers flags over the environment over the config file.
func resolveConfig(cmd *cobra.Command, g *globalOptions, opts *reportOptions) (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("org") {
		cfg.Org = opts.org
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("input") {
		cfg.Input = opts.input
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = opts.timeout
	}
	if flags.Changed("exclusive-tags") {
		independent := !opts.exclusiveTags
		cfg.Classification.IndependentTags = &independent
	}
	if flags.Changed("token") {
		cfg.Token = g.token
	}
	if flags.Changed("api-url") {
		cfg.APIURL = g.apiURL
	}
	if flags.Changed("debug") {
		cfg.Debug = g.debug
	}

	cfg.ApplyEnv(nil)
	cfg.ApplyDefaults()
	return cfg, nil
}
