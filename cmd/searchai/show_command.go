package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"searchai/internal/api"
	"searchai/internal/services"
)

var errNoQuery = errors.New("query id is required")

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var yamlOutput bool

	cmd := &cobra.Command{
		Use:   "show <query-id>",
		Short: "Show a query with its sources and documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()

			id := strings.TrimSpace(args[0])
			if id == "" {
				return services.WithStageError("validate", fmt.Errorf("%w: %w", services.ErrValidation, errNoQuery))
			}
			st, err := ctx.openStore(cmd.Context())
			if err != nil {
				return err
			}
			query, err := st.GetQuery(cmd.Context(), id)
			if err != nil {
				return services.WithStageError("database", err)
			}
			results, err := st.Results(cmd.Context(), id)
			if err != nil {
				return services.WithStageError("database", err)
			}
			documents, err := st.Documents(cmd.Context(), id)
			if err != nil {
				return services.WithStageError("database", err)
			}
			detail := api.QueryDetail{Query: *query, Results: results, Documents: documents}

			switch {
			case jsonOutput:
				return writeJSON(cmd, detail)
			case yamlOutput:
				return writeYAML(cmd, detail)
			}
			printQueryDetail(cmd.OutOrStdout(), detail, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print as JSON")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false, "Print as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	return cmd
}

func printQueryDetail(out io.Writer, detail api.QueryDetail, colorize bool) {
	q := detail.Query
	fmt.Fprintf(out, "Query:   %s\n", q.Text)
	fmt.Fprintf(out, "ID:      %s\n", q.ID)
	fmt.Fprintf(out, "Format:  %s\n", q.Format)
	fmt.Fprintf(out, "Status:  %s\n", queryStatusText(q.Status, colorize))
	fmt.Fprintf(out, "Created: %s\n", q.CreatedAt.Local().Format(historyTimeLayout))
	if q.ErrorMessage != "" {
		fmt.Fprintf(out, "Error:   %s\n", q.ErrorMessage)
	}

	if len(detail.Results) > 0 {
		fmt.Fprintln(out)
		rows := make([][]string, 0, len(detail.Results))
		for _, r := range detail.Results {
			rows = append(rows, []string{fmt.Sprint(r.Position + 1), r.Title, r.URL})
		}
		fmt.Fprintln(out, renderTable([]string{"#", "Source", "URL"}, rows, []columnAlignment{alignRight}, ""))
	}
	for _, d := range detail.Documents {
		fmt.Fprintf(out, "Document: %s (%d bytes)\n", d.Path, d.Size)
	}
}
