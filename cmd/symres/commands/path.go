package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/symres/internal/ui/output"
	"go.trai.ch/symres/internal/ui/style"
)

func (c *CLI) newPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Show the effective symbol search path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracePath, _ := cmd.Flags().GetString("trace")
			cacheOnly, _ := cmd.Flags().GetBool("cache-only")
			raw, _ := cmd.Flags().GetBool("raw")

			spec, err := c.app.SearchPath(cmd.Context(), options(cmd), tracePath, cacheOnly)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				_, _ = fmt.Fprintln(out, spec.String())
				return nil
			}
			palette := style.NewPalette(output.Renderer(out))
			for i, e := range spec.Elements() {
				_, _ = fmt.Fprintln(out, palette.Element(i, e.Kind().String(), e.String()))
			}
			return nil
		},
	}
	cmd.Flags().StringP("trace", "t", "", "Trace file whose neighboring symbol directories are searched first")
	cmd.Flags().Bool("cache-only", false, "Show the cache-only search path")
	cmd.Flags().Bool("raw", false, "Print the path as a single ';' separated string")

	cmd.AddCommand(c.newPathSetCmd())
	return cmd
}

func (c *CLI) newPathSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <value>",
		Short: "Persist a symbol path used after the environment variables",
		Long: "Persist a symbol path used after the environment variables.\n" +
			"An empty value clears the stored path.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetBool("source")
			return c.app.SetPersistedPath(cmd.Context(), options(cmd), args[0], source)
		},
	}
	cmd.Flags().Bool("source", false, "Persist the source path instead of the symbol path")
	return cmd
}
