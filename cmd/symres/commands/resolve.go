package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/symres/internal/ui/output"
	"go.trai.ch/symres/internal/ui/style"
	"go.trai.ch/zerr"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <file> <guid> <age>",
		Short: "Find the symbol file matching an identity",
		Long: "Find the symbol file matching an identity.\n\n" +
			"With --from, identities are read one per line as \"<file> <guid> <age>\";\n" +
			"blank lines and lines starting with # are ignored.",
		Args: func(cmd *cobra.Command, args []string) error {
			if from, _ := cmd.Flags().GetString("from"); from != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			tracePath, _ := cmd.Flags().GetString("trace")
			cacheOnly, _ := cmd.Flags().GetBool("cache-only")
			sourcePath, _ := cmd.Flags().GetString("source-path")
			from, _ := cmd.Flags().GetString("from")

			var ids []domain.SymbolIdentity
			if from != "" {
				var err error
				if ids, err = readIdentities(cmd.InOrStdin(), from); err != nil {
					return err
				}
			} else {
				id, err := domain.NewSymbolIdentity(args[0], args[1], args[2])
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			option := domain.OptionNone
			if cacheOnly {
				option = domain.OptionCacheOnly
			}
			reqs := make([]domain.ResolveRequest, len(ids))
			for i, id := range ids {
				reqs[i] = domain.ResolveRequest{
					Identity:      id,
					TracePath:     tracePath,
					SourceOverlay: sourcePath,
					Option:        option,
				}
			}

			opts := options(cmd)
			opts.BatchFromStdin = from == "-"
			results, err := c.app.Resolve(cmd.Context(), opts, reqs)
			if err != nil {
				return err
			}

			palette := style.NewPalette(output.Renderer(cmd.OutOrStdout()))
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			var errs error
			for _, r := range results {
				switch {
				case r.Err != nil:
					errs = errors.Join(errs, zerr.With(r.Err, "file", r.Request.Identity.FileName))
				case from == "" && r.Resolution.Found:
					_, _ = fmt.Fprintln(out, r.Resolution.Path)
				case from == "":
					_, _ = fmt.Fprintln(errOut, palette.Missing.Render(style.Cross)+" not found: "+r.Request.Identity.String())
				case r.Resolution.Found:
					_, _ = fmt.Fprintln(out, palette.Found.Render(style.Check)+" "+r.Request.Identity.String()+" "+r.Resolution.Path)
				default:
					_, _ = fmt.Fprintln(out, palette.Missing.Render(style.Cross)+" "+r.Request.Identity.String()+" "+palette.Muted.Render("not found"))
				}
			}
			return errs
		},
	}
	cmd.Flags().StringP("trace", "t", "", "Trace file whose neighboring symbol directories are searched first")
	cmd.Flags().Bool("cache-only", false, "Search only the local cache")
	cmd.Flags().StringP("source-path", "s", "", "Source path overlay remembered for later source lookups")
	cmd.Flags().StringP("from", "f", "", "Read identities from a file (- for stdin)")
	return cmd
}

// readIdentities parses a batch file. "-" reads stdin.
func readIdentities(stdin io.Reader, path string) ([]domain.SymbolIdentity, error) {
	r := stdin
	if path != "-" {
		//nolint:gosec // path is given by the operator
		f, err := os.Open(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to open batch file"), "path", path)
		}
		defer f.Close() //nolint:errcheck // read-only
		r = f
	}
	return parseIdentities(r)
}

func parseIdentities(r io.Reader) ([]domain.SymbolIdentity, error) {
	var ids []domain.SymbolIdentity
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, zerr.With(domain.ErrMalformedBatchLine, "line", line)
		}
		id, err := domain.NewSymbolIdentity(fields[0], fields[1], fields[2])
		if err != nil {
			return nil, zerr.With(err, "line", line)
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to read batch file")
	}
	return ids, nil
}
