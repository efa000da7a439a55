// Package commands implements the CLI commands for symres.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/symres/internal/app"
	"go.trai.ch/symres/internal/build"
	"go.trai.ch/symres/internal/core/domain"
)

// CLI represents the command line interface for symres.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, opts app.Options, reqs []domain.ResolveRequest) ([]app.ResolveResult, error)
	SearchPath(ctx context.Context, opts app.Options, tracePath string, cacheOnly bool) (domain.SearchPathSpec, error)
	SetPersistedPath(ctx context.Context, opts app.Options, value string, source bool) error
	ResolveSource(ctx context.Context, opts app.Options, relPath, overlay string) (string, bool, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "symres",
		Short:         "Locate debug symbol files across local and remote symbol stores",
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
	flags.StringP("config", "c", "", "Path to symres.yaml (default: user config dir)")
	flags.String("mode", "auto", "Session mode: auto, interactive, or unattended")
	flags.Bool("trust-all", false, "Load symbol files from untrusted locations without asking")
	flags.BoolP("yes", "y", false, "Answer yes to every question")
	flags.Bool("json-log", false, "Write logs as JSON")
	flags.Bool("trace-spans", false, "Export tracing spans to stderr")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newPathCmd())
	rootCmd.AddCommand(c.newSourceCmd())
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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInput sets the stream prompts are answered from. Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}

// options collects the global flags of cmd.
func options(cmd *cobra.Command) app.Options {
	configPath, _ := cmd.Flags().GetString("config")
	mode, _ := cmd.Flags().GetString("mode")
	trustAll, _ := cmd.Flags().GetBool("trust-all")
	yes, _ := cmd.Flags().GetBool("yes")
	jsonLog, _ := cmd.Flags().GetBool("json-log")
	traceSpans, _ := cmd.Flags().GetBool("trace-spans")

	return app.Options{
		ConfigPath: configPath,
		Mode:       mode,
		TrustAll:   trustAll,
		AssumeYes:  yes,
		JSONLog:    jsonLog,
		TraceSpans: traceSpans,
		In:         cmd.InOrStdin(),
		Err:        cmd.ErrOrStderr(),
	}
}
