package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/rsym/internal/build"
	"go.trai.ch/rsym/internal/core/domain"
)

// newVersionCmd reports the linker-stamped build info and the table cache
// format, so a stale .rsym/store can be traced to a format bump.
func (c *CLI) newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the rsym version and table cache format",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short {
				_, _ = fmt.Fprintln(out, build.Version)
				return
			}
			_, _ = fmt.Fprintf(out, "rsym version %s (commit: %s, date: %s)\n", build.Version, build.Commit, build.Date)
			_, _ = fmt.Fprintf(out, "table format: %s\n", domain.TableFormat)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}
