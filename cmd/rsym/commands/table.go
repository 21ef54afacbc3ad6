package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rsym/internal/app"
)

func (c *CLI) newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the merged resource view of a namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			namespace, _ := cmd.Flags().GetString("namespace")
			format, _ := cmd.Flags().GetString("format")
			filterExpr, _ := cmd.Flags().GetString("filter")
			style, _ := cmd.Flags().GetString("style")

			return c.app.Table(cmd.Context(), app.TableOptions{
				Options:   options(cmd),
				Namespace: namespace,
				Format:    format,
				Filter:    filterExpr,
				Style:     style,
			})
		},
	}
	cmd.Flags().StringP("namespace", "n", "", "Namespace whose view is printed (default: the one containing --dir)")
	cmd.Flags().StringP("format", "f", "text", "Output format: text, rtxt, or json")
	cmd.Flags().String("filter", "", `Only print rows matching an expression, e.g. 'type == "string" && !local'`)
	cmd.Flags().String("style", "auto", "Text style: auto, pretty, or plain")
	return cmd
}
