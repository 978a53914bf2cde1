package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"personal-budget/internal/backend"
	"personal-budget/internal/cli"
	"personal-budget/internal/core"
	applog "personal-budget/internal/log"
)

func newShowCmd(f *flags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the budget document with totals and shares",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cli.LoadAndValidateConfig(f.apply)
			if err != nil {
				return err
			}
			// Logs go to stderr so the table can be piped.
			logger := applog.New(applog.Config{
				Level:     applog.ParseLevel("warn"),
				Format:    cfg.LogFormat,
				Component: applog.ComponentApp,
				Output:    cmd.ErrOrStderr(),
			})

			bcfg, err := backend.FromAppConfig(cfg)
			if err != nil {
				return err
			}
			doc, res, err := backend.LoadDocument(cmd.Context(), backend.NewFactory(logger), bcfg, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if doc.Items == nil {
					doc.Items = []core.Item{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}

			fmt.Fprintln(out, cli.RenderTitle("PERSONAL BUDGET"))
			fmt.Fprintln(out, cli.RenderMuted("  "+res.Location))
			fmt.Fprint(out, renderDocument(doc))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the document as served by GET /budget")
	return cmd
}

func renderDocument(doc core.Document) string {
	if doc.Len() == 0 {
		return "\n  The budget document is empty.\n"
	}

	rows := make([][]string, 0, doc.Len()+2)
	for _, s := range doc.Shares() {
		rows = append(rows, []string{s.Title, cli.FormatAmount(s.Budget), cli.FormatPercent(s.Fraction)})
	}
	rows = append(rows, []string{"---"})
	share := "-"
	if doc.Total() > 0 {
		share = cli.FormatPercent(1)
	}
	rows = append(rows, []string{"Total", cli.FormatAmount(doc.Total()), share})

	return cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Budget", "Share"},
		Rows:    rows,
	})
}
