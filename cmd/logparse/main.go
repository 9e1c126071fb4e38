package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/logparse/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "logparse: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &app.Options{}

	root := &cobra.Command{
		Use:   "logparse [files...]",
		Short: "Browse multi-line log files entry by entry",
		Long: `logparse groups log lines into entries, each starting at a dated header
line, and lets you search, sort and page through them.

With no subcommand the interactive viewer starts with the given files open.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd, opts, args)
		},
	}
	root.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default: ~/.config/logparse/config.toml)")

	root.AddCommand(newViewCmd(opts))
	root.AddCommand(newQueryCmd(opts))
	root.AddCommand(newTypesCmd(opts))
	return root
}

func runViewer(cmd *cobra.Command, opts *app.Options, files []string) error {
	viewOpts := *opts
	viewOpts.Files = files
	return app.Run(cmd.Context(), viewOpts)
}

func newViewCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "view [files...]",
		Short: "Open files in the interactive viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd, opts, args)
		},
	}
}

func newQueryCmd(opts *app.Options) *cobra.Command {
	var q app.QueryOptions

	cmd := &cobra.Command{
		Use:   "query FILE",
		Short: "Print the entries of a file that match a search",
		Long: `Reconstruct FILE and print its entries without starting the viewer.

Search terms:
  text          entries containing text (case-insensitive)
  AND(a,b,...)  entries containing every term
  OR(a,b,...)   entries containing any term

Examples:
  logparse query server.log --search ERROR
  logparse query server.log --search "OR(timeout,refused)" --sort Date --reverse
  logparse query server.log --sort Type --limit 20 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Query(cmd.Context(), *opts, args[0], q, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "search query")
	cmd.Flags().StringVar(&q.Sort, "sort", "", "sort mode: Date or Type (default: file order)")
	cmd.Flags().BoolVarP(&q.Reverse, "reverse", "r", false, "reverse the order")
	cmd.Flags().IntVarP(&q.Limit, "limit", "n", 0, "print at most N entries (0 prints all)")
	cmd.Flags().BoolVar(&q.Full, "full", false, "print whole entries instead of titles")
	cmd.Flags().StringVarP(&q.Format, "output", "o", "text", "output format: text, json, yaml")
	return cmd
}

func newTypesCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "types FILE...",
		Short: "List the entry types found in files, in priority order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Types(cmd.Context(), *opts, args, cmd.OutOrStdout())
		},
	}
}
