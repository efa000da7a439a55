package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/symres/internal/ui/output"
	"go.trai.ch/symres/internal/ui/style"
)

func (c *CLI) newSourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source <path>",
		Short: "Find a source file through the source path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overlay, _ := cmd.Flags().GetString("source-path")

			path, ok, err := c.app.ResolveSource(cmd.Context(), options(cmd), args[0], overlay)
			if err != nil {
				return err
			}
			if !ok {
				palette := style.NewPalette(output.Renderer(cmd.ErrOrStderr()))
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), palette.Missing.Render(style.Cross)+" not found: "+args[0])
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringP("source-path", "s", "", "Directories searched ahead of the configured source path")
	return cmd
}
