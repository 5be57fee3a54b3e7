// Package commands implements the CLI commands for provcache.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/provcache/internal/build"
	"go.trai.ch/provcache/internal/core/domain"
)

// CLI represents the command line interface for provcache.
type CLI struct {
	app     Application
	output  OutputSwitcher
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Add(ctx context.Context, id domain.Identifier, result domain.ScanResult) error
	Read(ctx context.Context, id domain.Identifier) (domain.ScanResultContainer, error)
	ReadCompatible(
		ctx context.Context,
		pkg domain.Package,
		scanner domain.ScannerDetails,
	) (domain.ScanResultContainer, error)
	PathExcludes(pkg domain.Package) ([]domain.PathExclude, bool)
	IsExcluded(pkg domain.Package, path string) (domain.PathExclude, bool)
}

// OutputSwitcher switches log output between pretty and JSON lines.
type OutputSwitcher interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app. The output switcher
// may be nil, in which case --json has no effect on logging.
func New(a Application, output OutputSwitcher) *CLI {
	rootCmd := &cobra.Command{
		Use:           "provcache",
		Short:         "A provenance-aware cache for license scan results",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	var jsonLogs bool
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "Write logs as JSON lines")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if output != nil {
			output.SetJSON(jsonLogs)
		}
	}

	c := &CLI{
		app:     a,
		output:  output,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newReadCmd())
	rootCmd.AddCommand(c.newExcludesCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetInput sets the input stream for the root command.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}

// SetOutput sets the output and error streams for the root command.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
