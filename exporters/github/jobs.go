package github

import (
	"context"
	"fmt"
	"io"

	"github.com/google/go-github/v73/github"

	"github.com/flanksource/workflow-db/metrics"
	"github.com/flanksource/workflow-db/ndjson"
)

// ExportJobs appends every job of every given run as one JSON line to w and
// returns the number of jobs written. The pacer sleeps after each run's
// listing, the final one included, so N runs always cost N sleeps.
// The first error aborts the remaining runs.
func (c *Client) ExportJobs(ctx context.Context, runIDs []int64, w io.Writer) (int, error) {
	enc := ndjson.NewWriter(w)

	total := 0
	for _, runID := range runIDs {
		opts := &github.ListWorkflowJobsOptions{
			ListOptions: github.ListOptions{PerPage: pageSize},
		}

		for {
			jobs, resp, err := c.Actions.ListWorkflowJobs(ctx, c.owner, c.repo, runID, opts)
			metrics.APICalls.WithLabelValues("jobs").Inc()
			if err != nil {
				return total, fmt.Errorf("failed to list jobs for run %d: %w", runID, err)
			}

			for _, job := range jobs.Jobs {
				if err := enc.Encode(job); err != nil {
					return total, fmt.Errorf("failed to write job %d of run %d: %w", job.GetID(), runID, err)
				}
				total++
			}

			if resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
		}

		c.pacer.Wait()
	}

	metrics.JobsExported.Add(float64(total))
	return total, nil
}
