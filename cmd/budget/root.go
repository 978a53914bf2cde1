package main

import (
	"github.com/spf13/cobra"

	"personal-budget/internal/config"
)

// flags override the matching environment variables when set.
type flags struct {
	port   string
	source string
	file   string
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "budget",
		Short: "Personal budget server",
		Long:  "Serve a personal budget document as JSON together with a chart frontend.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, f)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&f.port, "port", "p", "", "Listen port (overrides PORT)")
	root.PersistentFlags().StringVarP(&f.source, "source", "s", "", "Document source: file, sheets or sqlite (overrides BUDGET_SOURCE)")
	root.PersistentFlags().StringVarP(&f.file, "file", "f", "", "Budget document .json/.yaml/.toml (overrides BUDGET_FILE)")

	root.AddCommand(newServeCmd(f), newShowCmd(f))
	return root
}

func (f *flags) apply(cfg *config.Config) {
	if f.port != "" {
		cfg.Port = f.port
	}
	if f.source != "" {
		cfg.Source = f.source
	}
	if f.file != "" {
		cfg.BudgetFile = f.file
	}
}
