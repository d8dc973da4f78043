package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"searchai/internal/format"
	"searchai/internal/workflow"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var outputFlag string
	var jsonOutput bool
	var yamlOutput bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Research a query and generate a document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			runCtx := cmd.Context()
			st, err := ctx.openStore(runCtx)
			if err != nil {
				return err
			}
			coordinator, err := ctx.buildCoordinator(runCtx, st)
			if err != nil {
				return err
			}
			if !quiet && !jsonOutput && !yamlOutput {
				coordinator = coordinator.WithObserver(newProgressPrinter(cmd.ErrOrStderr()))
			}

			outcome, err := coordinator.Run(runCtx, workflow.Request{
				Query:     strings.Join(args, " "),
				Format:    format.Format(strings.ToLower(strings.TrimSpace(formatFlag))),
				OutputDir: outputFlag,
			})
			if err != nil {
				return err
			}

			switch {
			case jsonOutput:
				return writeJSON(cmd, outcome)
			case yamlOutput:
				return writeYAML(cmd, outcome)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Document saved to %s (%s, %d bytes)\n", outcome.Path, outcome.Format, outcome.Size)
			if outcome.PublishedURI != "" {
				fmt.Fprintf(out, "Published to %s\n", outcome.PublishedURI)
			}
			fmt.Fprintf(out, "Query ID: %s\n", outcome.QueryID)
			fmt.Fprintf(out, "Sources: %d, elapsed %s\n", len(outcome.Results), outcome.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(format.Markdown), "Output format (markdown, pdf, ppt)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory (defaults to paths.output_dir)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the outcome as JSON")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false, "Print the outcome as YAML")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	return cmd
}

var stageLabels = map[string]string{
	workflow.StageSearch:   "Searching the web",
	workflow.StageGenerate: "Generating content",
	workflow.StageRender:   "Rendering document",
	workflow.StagePublish:  "Publishing",
}

// progressPrinter reports stage progress on stderr.
type progressPrinter struct {
	out      io.Writer
	colorize bool
	started  map[string]time.Time
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	return &progressPrinter{
		out:      out,
		colorize: shouldColorize(out),
		started:  make(map[string]time.Time),
	}
}

func (p *progressPrinter) StageStarted(_ context.Context, stage string) {
	p.started[stage] = time.Now()
	fmt.Fprintln(p.out, renderStatusLine(stageLabel(stage), statusInfo, "running", p.colorize))
}

func (p *progressPrinter) StageFinished(_ context.Context, stage string, err error) {
	elapsed := time.Since(p.started[stage]).Round(100 * time.Millisecond)
	if err != nil {
		fmt.Fprintln(p.out, renderStatusLine(stageLabel(stage), statusError, "failed after "+elapsed.String(), p.colorize))
		return
	}
	fmt.Fprintln(p.out, renderStatusLine(stageLabel(stage), statusOK, elapsed.String(), p.colorize))
}

func stageLabel(stage string) string {
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return stage
}
