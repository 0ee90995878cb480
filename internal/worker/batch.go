// Package worker runs batch persona generation. Processing is strictly
// sequential: one user at a time, so the API rate budget is shared
// predictably and output ordering matches input ordering.
package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mvoloshin/personify/internal/util"
)

// Processor defines the per-user operation the batch runs
type Processor interface {
	ProcessUser(ctx context.Context, username string) (outputPath string, err error)
}

// UserJobResult is the outcome for one username
type UserJobResult struct {
	Username   string
	OutputPath string
	Err        error
}

// RunSummary aggregates a batch run
type RunSummary struct {
	Attempted int
	Succeeded int
	Failed    int
	Failures  []UserJobResult
}

// BatchProcessor processes usernames one after another. A failing user
// never stops the batch; only context cancellation does.
type BatchProcessor struct {
	processor Processor
}

// NewBatchProcessor creates a sequential batch processor
func NewBatchProcessor(processor Processor) *BatchProcessor {
	return &BatchProcessor{processor: processor}
}

// ProcessUsers runs every username in order and returns one result per
// attempted user plus the summary
func (b *BatchProcessor) ProcessUsers(ctx context.Context, usernames []string) ([]UserJobResult, RunSummary) {
	results := make([]UserJobResult, 0, len(usernames))
	var summary RunSummary

	for _, username := range usernames {
		if ctx.Err() != nil {
			break
		}

		path, err := b.processor.ProcessUser(ctx, username)
		result := UserJobResult{Username: username, OutputPath: path, Err: err}
		results = append(results, result)

		summary.Attempted++
		if err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, result)
		} else {
			summary.Succeeded++
		}
	}

	return results, summary
}

// ProcessFile reads usernames from a file and processes them in order
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]UserJobResult, RunSummary, error) {
	usernames, err := ReadUsernamesFromFile(path)
	if err != nil {
		return nil, RunSummary{}, fmt.Errorf("read usernames: %w", err)
	}

	results, summary := b.ProcessUsers(ctx, usernames)
	return results, summary, nil
}

// ReadUsernamesFromFile reads one username or profile URL per line.
// Blank lines and # comments are skipped; duplicates are dropped after
// normalization, keeping the first occurrence.
func ReadUsernamesFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var usernames []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		username, err := util.ExtractUsername(line)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", line, err)
		}

		key := strings.ToLower(username)
		if seen[key] {
			continue
		}
		seen[key] = true
		usernames = append(usernames, username)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	if len(usernames) == 0 {
		return nil, fmt.Errorf("no usernames found in %s", path)
	}
	return usernames, nil
}
