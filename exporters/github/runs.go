package github

import (
	"context"
	"fmt"
	"io"

	"github.com/google/go-github/v73/github"
	"github.com/samber/lo"

	"github.com/flanksource/workflow-db/metrics"
	"github.com/flanksource/workflow-db/ndjson"
)

// ExportRuns writes every workflow run created on the given date (UTC,
// YYYY-MM-DD) as one JSON line to w, in API order, and returns the run IDs
// in the same order for the job export.
func (c *Client) ExportRuns(ctx context.Context, date string, w io.Writer) ([]int64, error) {
	enc := ndjson.NewWriter(w)

	var runIDs []int64
	opts := &github.ListWorkflowRunsOptions{
		Created:     date,
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	for {
		runs, resp, err := c.Actions.ListRepositoryWorkflowRuns(ctx, c.owner, c.repo, opts)
		metrics.APICalls.WithLabelValues("runs").Inc()
		if err != nil {
			return nil, fmt.Errorf("failed to list workflow runs for %s created on %s: %w", c.Repository(), date, err)
		}

		for _, run := range runs.WorkflowRuns {
			if err := enc.Encode(run); err != nil {
				return nil, fmt.Errorf("failed to write workflow run %d: %w", run.GetID(), err)
			}
		}
		runIDs = append(runIDs, lo.Map(runs.WorkflowRuns, func(run *github.WorkflowRun, _ int) int64 {
			return run.GetID()
		})...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	metrics.RunsExported.Add(float64(len(runIDs)))
	return runIDs, nil
}
