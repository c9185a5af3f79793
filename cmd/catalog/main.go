package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/catalog/internal/app"
	"github.com/five82/catalog/internal/catalog"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Browse a product catalogue in the terminal",
		Long: `catalog loads a JSON list of product records from a file or an HTTP URL
and shows it as a filterable table. Press / to search by code, name or
colour, c to change the category, and ? for all keys.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/catalog/config.toml)")
	flags.StringVar(&opts.Source, "source", "", "catalogue file or http(s) URL, overrides the config")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newListCmd(&opts), newExportCmd(&opts))
	return root
}

func addQueryFlags(cmd *cobra.Command, q *app.Query) {
	cmd.Flags().StringVarP(&q.Text, "query", "q", "", "match code, name or colour (case-insensitive)")
	cmd.Flags().StringVarP(&q.Category, "category", "c", catalog.CategoryAll, "product type, or \"all\"")
}

func newListCmd(opts *app.Options) *cobra.Command {
	var q app.Query
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print matching records as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.List(cmd.Context(), *opts, q, cmd.OutOrStdout())
		},
	}
	addQueryFlags(cmd, &q)
	return cmd
}

func newExportCmd(opts *app.Options) *cobra.Command {
	var (
		q      app.Query
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write matching records as a static HTML page",
		Example: `  catalog export -o catalogue.html
  catalog export --category PP --query red`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				return app.Export(cmd.Context(), *opts, q, cmd.OutOrStdout())
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := app.Export(cmd.Context(), *opts, q, f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}
	addQueryFlags(cmd, &q)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
