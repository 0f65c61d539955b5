package github

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/workflow-db/ndjson"
)

func TestExportJobs(t *testing.T) {
	var queries []string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/flanksource/config-db/actions/runs/111/jobs", func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, "111")
		fmt.Fprint(w, `{"total_count":3,"jobs":[{"id":1,"run_id":111},{"id":2,"run_id":111},{"id":3,"run_id":111}]}`)
	})
	mux.HandleFunc("/repos/flanksource/config-db/actions/runs/222/jobs", func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, "222")
		fmt.Fprint(w, `{"total_count":0,"jobs":[]}`)
	})

	client := newTestClient(t, mux)
	var slept []time.Duration
	client.pacer.sleep = func(d time.Duration) { slept = append(slept, d) }

	var buf bytes.Buffer
	count, err := client.ExportJobs(context.Background(), []int64{111, 222}, &buf)
	require.NoError(t, err)

	assert.Equal(t, 3, count)
	assert.Equal(t, []string{"111", "222"}, queries, "exactly one job-list query per run")
	assert.Equal(t, []time.Duration{4 * time.Second, 4 * time.Second}, slept, "one sleep per run, final run included")

	lines, err := ndjson.Count(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 3, lines)
}

func TestExportJobsNoRuns(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL)
	})

	client := newTestClient(t, mux)
	var slept []time.Duration
	client.pacer.sleep = func(d time.Duration) { slept = append(slept, d) }

	var buf bytes.Buffer
	count, err := client.ExportJobs(context.Background(), nil, &buf)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, slept, "no queries means no sleeps")
	assert.Zero(t, buf.Len())
}

func TestExportJobsAbortsOnError(t *testing.T) {
	var queried []string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/flanksource/config-db/actions/runs/111/jobs", func(w http.ResponseWriter, r *http.Request) {
		queried = append(queried, "111")
		fmt.Fprint(w, `{"total_count":1,"jobs":[{"id":1,"run_id":111}]}`)
	})
	mux.HandleFunc("/repos/flanksource/config-db/actions/runs/333/jobs", func(w http.ResponseWriter, r *http.Request) {
		queried = append(queried, "333")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"Resource not accessible by integration"}`)
	})
	mux.HandleFunc("/repos/flanksource/config-db/actions/runs/444/jobs", func(w http.ResponseWriter, r *http.Request) {
		queried = append(queried, "444")
	})

	client := newTestClient(t, mux)
	client.pacer.sleep = func(time.Duration) {}

	var buf bytes.Buffer
	count, err := client.ExportJobs(context.Background(), []int64{111, 333, 444}, &buf)
	require.ErrorContains(t, err, "failed to list jobs for run 333")
	assert.Equal(t, 1, count, "jobs written before the failure stay written")
	assert.Equal(t, []string{"111", "333"}, queried, "remaining runs are not queried after a failure")
}

func TestExportJobsPaginates(t *testing.T) {
	var pages []string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/flanksource/config-db/actions/runs/111/jobs", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		if page == "" || page == "1" {
			w.Header().Set("Link", fmt.Sprintf(`<http://%s%s?page=2>; rel="next"`, r.Host, r.URL.Path))
			fmt.Fprint(w, `{"total_count":2,"jobs":[{"id":1,"run_id":111}]}`)
		} else {
			fmt.Fprint(w, `{"total_count":2,"jobs":[{"id":2,"run_id":111}]}`)
		}
	})

	client := newTestClient(t, mux)
	var slept []time.Duration
	client.pacer.sleep = func(d time.Duration) { slept = append(slept, d) }

	var buf bytes.Buffer
	count, err := client.ExportJobs(context.Background(), []int64{111}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, pages, 2, "pagination continuations don't count as extra runs")
	assert.Len(t, slept, 1, "pagination pages share the run's single sleep")
}
