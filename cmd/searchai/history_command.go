package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"searchai/internal/export"
	"searchai/internal/services"
	"searchai/internal/store"
	"searchai/internal/textutil"
)

const (
	historyQueryWidth = 50
	historyTimeLayout = "2006-01-02 15:04"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool
	var yamlOutput bool
	var exportPath string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()

			if limit <= 0 {
				return services.WithStageError("validate", fmt.Errorf("%w: --limit must be positive", services.ErrValidation))
			}
			st, err := ctx.openStore(cmd.Context())
			if err != nil {
				return err
			}
			queries, err := st.History(cmd.Context(), limit)
			if err != nil {
				return services.WithStageError("database", err)
			}

			if exportPath = strings.TrimSpace(exportPath); exportPath != "" {
				if err := export.SaveHistory(exportPath, queries); err != nil {
					return services.WithStageError("export", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d queries to %s\n", len(queries), exportPath)
				return nil
			}

			switch {
			case jsonOutput:
				if queries == nil {
					queries = []store.Query{}
				}
				return writeJSON(cmd, queries)
			case yamlOutput:
				return writeYAML(cmd, queries)
			}

			out := cmd.OutOrStdout()
			if len(queries) == 0 {
				fmt.Fprintln(out, "No search history found.")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(queries, shouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of queries to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print history as JSON")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false, "Print history as YAML")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write history to an .xlsx workbook instead of printing it")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml", "export")
	return cmd
}

func renderHistoryTable(queries []store.Query, colorize bool) string {
	rows := make([][]string, 0, len(queries))
	for _, q := range queries {
		rows = append(rows, []string{
			shortID(q.ID),
			textutil.Truncate(textutil.CollapseSpace(q.Text), historyQueryWidth),
			q.Format.String(),
			queryStatusText(q.Status, colorize),
			q.CreatedAt.Local().Format(historyTimeLayout),
		})
	}
	caption := fmt.Sprintf("%d %s", len(queries), plural(len(queries), "query", "queries"))
	return renderTable(
		[]string{"ID", "Query", "Format", "Status", "Created"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
		caption,
	)
}

// shortID returns the first uuid group, enough to recognise a query at a glance.
func shortID(id string) string {
	if before, _, ok := strings.Cut(id, "-"); ok {
		return before
	}
	return id
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
