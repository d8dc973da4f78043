package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"searchai/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, formatError(err))
		}
		os.Exit(1)
	}
}

// formatError renders err as the single line printed before exiting.
func formatError(err error) string {
	if stage, ok := services.Stage(err); ok {
		return fmt.Sprintf("Error: %s: %v", stage, err)
	}
	return fmt.Sprintf("Error: %v", err)
}
