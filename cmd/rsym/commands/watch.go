package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rsym/internal/adapters/watcher"
	"go.trai.ch/rsym/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check the workspace again whenever a file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			debounce, _ := cmd.Flags().GetDuration("debounce")

			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Options:  options(cmd),
				Debounce: debounce,
			})
		},
	}
	cmd.Flags().Duration("debounce", watcher.DefaultDebounceWindow, "Quiet period before a rebuild")
	return cmd
}
