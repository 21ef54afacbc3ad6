// Package commands implements the CLI commands for the rsym resolver.
package commands

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"go.trai.ch/rsym/internal/app"
	"go.trai.ch/rsym/internal/build"
)

// CLI represents the command line interface for rsym.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	shutdown func(context.Context) error
}

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.Options) func(context.Context) error
	Resolve(ctx context.Context, refs []string, opts app.ResolveOptions) error
	Table(ctx context.Context, opts app.TableOptions) error
	Check(ctx context.Context, opts app.Options) error
	Watch(ctx context.Context, opts app.WatchOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "rsym",
		Short:         "Resolve resource symbols across namespaces",
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

	flags := rootCmd.PersistentFlags()
	flags.StringP("dir", "C", ".", "Run as if started in this directory")
	flags.Bool("no-cache", false, "Bypass the table cache and regenerate every table")
	flags.IntP("jobs", "j", runtime.NumCPU(), "Number of tables generated concurrently")
	flags.Bool("json", false, "Emit logs as JSON lines")
	flags.Bool("trace", false, "Log a timing line for every build step")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		c.shutdown = c.app.Configure(options(cmd))
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newTableCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()
	if c.shutdown != nil {
		// Flushing spans must not hide the command's own error.
		if shutdownErr := c.shutdown(context.WithoutCancel(ctx)); err == nil {
			err = shutdownErr
		}
	}
	return err
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// options reads the persistent flags shared by every subcommand.
func options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	noCache, _ := flags.GetBool("no-cache")
	jobs, _ := flags.GetInt("jobs")
	jsonLogs, _ := flags.GetBool("json")
	trace, _ := flags.GetBool("trace")

	return app.Options{
		Dir:     dir,
		NoCache: noCache,
		Jobs:    jobs,
		Trace:   trace,
		JSON:    jsonLogs,
	}
}
