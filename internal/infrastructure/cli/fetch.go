package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/repocat/internal/infrastructure/config"
	"github.com/felixgeelhaar/repocat/internal/infrastructure/github"
	"github.com/felixgeelhaar/repocat/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/repocat/pkg/storage"
	"github.com/spf13/cobra"
)

func newFetchCmd(g *globalOptions) *cobra.Command {
	var (
		org string
		out string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Save the raw repository listing of an organization as a snapshot",
		Long: `Save the raw repository listing of an organization as a JSON snapshot.
The snapshot can be classified later with 'repocat --input <file>'.

Examples:
  repocat fetch --org acme --out repos.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("org") {
				cfg.Org = org
			}
			if cmd.Flags().Changed("token") {
				cfg.Token = g.token
			}
			if cmd.Flags().Changed("api-url") {
				cfg.APIURL = g.apiURL
			}
			if cmd.Flags().Changed("debug") {
				cfg.Debug = g.debug
			}
			cfg.ApplyEnv(nil)
			cfg.ApplyDefaults()

			if cfg.Org == "" {
				return config.ErrMissingOrg
			}

			log := newLogger(cmd.ErrOrStderr(), cfg.Debug)
			fetcher, err := wiring.NewFetcher(cfg, log)
			if err != nil {
				return err
			}

			records, fetchErr := fetcher.Fetch(cmd.Context(), cfg.Org)
			var partial *github.FetchError
			if errors.As(fetchErr, &partial) {
				log.WithError(fetchErr).Error("repository listing ended early")
			} else if fetchErr != nil {
				return fetchErr
			}

			if err := storage.SaveSnapshot(out, records); err != nil {
				return NewCLIError("cannot write snapshot", "Check the directory of --out", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d repositories of %s to %s\n", len(records), cfg.Org, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "GitHub organization name")
	cmd.Flags().StringVar(&out, "out", "", "snapshot file to write")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
