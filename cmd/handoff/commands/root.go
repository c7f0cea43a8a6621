package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewRootCmd returns the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "handoff",
		Short: "Producer/consumer runs over a blocking handoff buffer",
		Long: `handoff - run producers and consumers against one shared buffer.

A buffer has a capacity policy:
  single      one slot
  fixed:N     N slots
  unbounded   puts never block

Examples:
  # Two producers, three consumers, 100 items each producer, 4 slots
  handoff run -p 2 -c 3 -n 100 --policy fixed:4

  # Load the run from a file and audit consumed items in SQLite
  handoff run -f run.yaml --journal run.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), verbose))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	root.AddCommand(newRunCmd())

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
