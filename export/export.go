// Package export orchestrates one forward pass: resolve the target date,
// dump workflow runs and their jobs to local NDJSON files, then upload and
// load both into the warehouse. Any step failure aborts the remaining steps.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/flanksource/commons/logger"

	"github.com/flanksource/workflow-db/metrics"
	"github.com/flanksource/workflow-db/ndjson"
	"github.com/flanksource/workflow-db/utils"
	"github.com/flanksource/workflow-db/warehouse"
)

// The two logical files, in upload order. Their names double as the
// destination table names.
const (
	TableWorkflows = "workflows"
	TableJobs      = "jobs"
)

var tables = []string{TableWorkflows, TableJobs}

// Fetcher produces the two NDJSON files from the source API.
type Fetcher interface {
	ExportRuns(ctx context.Context, date string, w io.Writer) ([]int64, error)
	ExportJobs(ctx context.Context, runIDs []int64, w io.Writer) (int, error)
}

// Sink receives the finished files.
type Sink interface {
	Upload(ctx context.Context, localPath, objectKey string) error
	Load(ctx context.Context, objectKey, table string) error
}

// StepResult is the outcome of one pipeline step.
type StepResult struct {
	Name string
	Rows int
	Err  error
}

type Pipeline struct {
	Fetcher Fetcher
	Sink    Sink
	// Dir is the local scratch directory for the NDJSON files
	Dir string
	// Date overrides the target date (backfills); empty means yesterday UTC
	Date string
}

func (p *Pipeline) filePath(table string) string {
	return filepath.Join(p.Dir, table+".json")
}

// Run executes the pass and returns the per-step report. The returned error
// is the first step failure, if any.
func (p *Pipeline) Run(ctx context.Context) ([]StepResult, error) {
	var report []StepResult

	step := func(name string, rows int, err error) error {
		report = append(report, StepResult{Name: name, Rows: rows, Err: err})
		if err != nil {
			metrics.StepFailures.WithLabelValues(name).Inc()
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}

	date := p.Date
	if date == "" {
		date = TargetDate(utils.Now())
	}
	if err := ValidateDate(date); err != nil {
		return report, fmt.Errorf("resolve-date: %w", err)
	}

	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return report, fmt.Errorf("failed to create output dir %s: %w", p.Dir, err)
	}

	logger.Infof("exporting workflow runs created on %s", date)

	runIDs, err := p.fetchRuns(ctx, date)
	if err := step("fetch-runs", len(runIDs), err); err != nil {
		return report, err
	}

	jobCount, err := p.fetchJobs(ctx, runIDs)
	if err := step("fetch-jobs", jobCount, err); err != nil {
		return report, err
	}

	for _, table := range tables {
		localPath := p.filePath(table)
		objectKey := warehouse.ObjectKey(date, table)

		if err := step("upload-"+table, 0, p.Sink.Upload(ctx, localPath, objectKey)); err != nil {
			return report, err
		}

		rows, err := countRows(localPath)
		if err != nil {
			return report, fmt.Errorf("failed to count rows in %s: %w", localPath, err)
		}
		if err := step("load-"+table, rows, p.load(ctx, objectKey, table, rows)); err != nil {
			return report, err
		}
	}

	metrics.ExportsCompleted.Inc()
	logger.Infof("export for %s complete: %d runs, %d jobs", date, len(runIDs), jobCount)
	return report, nil
}

func (p *Pipeline) fetchRuns(ctx context.Context, date string) ([]int64, error) {
	f, err := os.Create(p.filePath(TableWorkflows))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", p.filePath(TableWorkflows), err)
	}
	defer f.Close()

	runIDs, err := p.Fetcher.ExportRuns(ctx, date, f)
	if err != nil {
		return nil, err
	}
	return runIDs, f.Close()
}

func (p *Pipeline) fetchJobs(ctx context.Context, runIDs []int64) (int, error) {
	// Fresh file per pass; the fetcher appends to it across runs.
	f, err := os.Create(p.filePath(TableJobs))
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", p.filePath(TableJobs), err)
	}
	defer f.Close()

	count, err := p.Fetcher.ExportJobs(ctx, runIDs, f)
	if err != nil {
		return count, err
	}
	return count, f.Close()
}

// load skips the BigQuery call for an empty file: autodetect can't infer a
// schema from zero rows, and an empty day is not an error.
func (p *Pipeline) load(ctx context.Context, objectKey, table string, rows int) error {
	if rows == 0 {
		logger.Infof("%s has no rows, nothing to load", table)
		return nil
	}
	return p.Sink.Load(ctx, objectKey, table)
}

func countRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return ndjson.Count(f)
}
