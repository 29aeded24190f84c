package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// globalOptions are shared by every command.
type globalOptions struct {
	configPath string
	token      string
	apiURL     string
	debug      bool
}

// NewRootCmd builds the command tree. The root command runs a report.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}
	opts := &reportOptions{}

	root := &cobra.Command{
		Use:     "repocat",
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date),
		Short:   "Group an organization's repositories by topic and category",
		Long: `repocat lists the repositories of a GitHub organization, groups the ones
tagged "cloudformation" or "terraform" by their ProjectCategory custom
property and collects the "in-progress" ones. Three JSON files are written
to the output directory:

  cloudformation_repos.json     category -> repositories
  terraform_repos.json          category -> repositories
  currently_working_repos.json  repositories

Examples:
  repocat --org acme --output-dir ./site/data
  repocat --org acme --output-dir ./out --debug
  repocat fetch --org acme --out repos.json
  repocat --input repos.json --output-dir ./out`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, g, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&g.token, "token", "", "GitHub token (defaults to $GITHUB_TOKEN)")
	pf.StringVar(&g.apiURL, "api-url", "", "GitHub API base URL (defaults to $GITHUB_API_URL or https://api.github.com/)")
	pf.BoolVar(&g.debug, "debug", false, "enable debug output")

	addReportFlags(root, opts)
	root.AddCommand(newFetchCmd(g))

	return root
}

// Execute runs the root command and reports errors with their hints.
func Execute() error {
	return ExecuteArgs(os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteArgs runs the command tree with explicit arguments and streams.
func ExecuteArgs(args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := MapError(root.Execute())
	if err != nil {
		printError(stderr, err)
	}
	return err
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.ExitCode
	}
	return 1
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.Hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", cliErr.Hint)
	}
}
