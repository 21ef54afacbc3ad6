package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rsym/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [references...]",
		Short: "Resolve references to resource ids",
		Long: `Resolve each reference against the merged view of a namespace and print
its id and the namespace that supplied it.

References are written R.type.name, package.R.type.name, @type/name or
@package:type/name.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			namespace, _ := cmd.Flags().GetString("namespace")

			return c.app.Resolve(cmd.Context(), args, app.ResolveOptions{
				Options:   options(cmd),
				Namespace: namespace,
			})
		},
	}
	cmd.Flags().StringP("namespace", "n", "", "Namespace whose view is used (default: the one containing --dir)")
	return cmd
}
