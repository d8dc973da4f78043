package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"searchai/internal/config"
	"searchai/internal/format"
	"searchai/internal/services"
	"searchai/internal/services/gcs"
	"searchai/internal/services/llm"
	"searchai/internal/services/serper"
	"searchai/internal/services/vertex"
	"searchai/internal/store"
)

const remoteCheckTimeout = 30 * time.Second

// CheckDatabase opens the store, applies the schema, and counts queries.
func CheckDatabase(ctx context.Context, cfg *config.Config) Result {
	const name = "Database"

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	defer st.Close()

	stats, err := st.Stats(ctx)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	total := 0
	for _, n := range stats {
		total += n
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d queries, %d failed)", cfg.Database.DSN, total, stats[store.StatusFailed])}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckOutputDirectory accepts a directory that does not exist yet as long as
// its nearest existing ancestor is writable, since runs create it on demand.
func CheckOutputDirectory(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	if _, err := os.Stat(path); err == nil || !os.IsNotExist(err) {
		return CheckDirectoryAccess(name, path)
	}
	parent := filepath.Dir(path)
	for {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		next := filepath.Dir(parent)
		if next == parent {
			break
		}
		parent = next
	}
	check := CheckDirectoryAccess(name, parent)
	if !check.Passed {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot be created under %s)", path, parent)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckSerper runs a one-result search to verify the key.
func CheckSerper(ctx context.Context, cfg config.Search) Result {
	const name = "Search (serper)"
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Result{Name: name, Detail: "API key missing"}
	}
	checkCtx, cancel := context.WithTimeout(ctx, remoteCheckTimeout)
	defer cancel()

	client := serper.NewClient(serper.Config{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL, MaxResults: 1})
	if _, err := client.Search(checkCtx, "searchai health check"); err != nil {
		return Result{Name: name, Detail: summarizeRemoteError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckLLM verifies that the configured LLM backend answers.
func CheckLLM(ctx context.Context, cfg config.LLM) Result {
	name := fmt.Sprintf("LLM (%s %s)", cfg.Provider, cfg.Model)
	checkCtx, cancel := context.WithTimeout(ctx, remoteCheckTimeout)
	defer cancel()

	if cfg.Provider == "vertex" {
		client, err := vertex.NewClient(checkCtx, vertex.Config{ProjectID: cfg.ProjectID, Location: cfg.Location, Model: cfg.Model})
		if err != nil {
			return Result{Name: name, Detail: summarizeRemoteError(err)}
		}
		defer client.Close()
		_, err = client.Complete(checkCtx, services.CompletionRequest{
			Prompt: "Reply with the single word ok.",
			Params: format.Params{MaxOutputTokens: 8},
		})
		if err != nil {
			return Result{Name: name, Detail: summarizeRemoteError(err)}
		}
		return Result{Name: name, Passed: true, Detail: "API reachable"}
	}

	if cfg.APIKey == "" {
		return Result{Name: name, Detail: "API key missing"}
	}
	client := llm.NewClient(llm.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Referer: cfg.Referer,
		Title:   cfg.Title,
	})
	if err := client.HealthCheck(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeRemoteError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckBucket verifies the publish bucket is accessible.
func CheckBucket(ctx context.Context, cfg config.Publish) Result {
	name := "Publish bucket"
	checkCtx, cancel := context.WithTimeout(ctx, remoteCheckTimeout)
	defer cancel()

	publisher, err := gcs.NewPublisher(checkCtx, cfg.Bucket, cfg.Prefix)
	if err != nil {
		return Result{Name: name, Detail: summarizeRemoteError(err)}
	}
	defer publisher.Close()
	if err := publisher.Check(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeRemoteError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "gs://" + publisher.Bucket()}
}

// summarizeRemoteError produces a human-readable summary for failed remote checks.
func summarizeRemoteError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (API unreachable)"
	}
	return err.Error()
}
