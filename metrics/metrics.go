package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RunsExported = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "workflow_db_runs_exported_total",
		Help: "Workflow runs written to the export file",
	})
	JobsExported = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "workflow_db_jobs_exported_total",
		Help: "Workflow jobs written to the export file",
	})
	APICalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_db_github_api_calls_total",
		Help: "GitHub API calls by endpoint",
	}, []string{"endpoint"})
	StepFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_db_step_failures_total",
		Help: "Pipeline step failures by step",
	}, []string{"step"})
	ExportsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "workflow_db_exports_completed_total",
		Help: "Fully completed export passes",
	})
)

func init() {
	prometheus.MustRegister(
		RunsExported,
		JobsExported,
		APICalls,
		StepFailures,
		ExportsCompleted,
	)
}
