package cmd

import (
	"context"
	"fmt"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"

	v1 "github.com/flanksource/workflow-db/api/v1"
	"github.com/flanksource/workflow-db/export"
	"github.com/flanksource/workflow-db/exporters/github"
	"github.com/flanksource/workflow-db/warehouse"
)

var exportDate string
var outputDir string

// Export ...
var Export = &cobra.Command{
	Use:   "export <config.yaml>",
	Short: "Run one export pass for yesterday (or --date) and exit",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := ParseConfig(args[0])
		if err != nil {
			logger.Fatalf(err.Error())
		}
		if outputDir != "" {
			config.Output.Dir = outputDir
		}

		ctx := context.Background()
		pipeline, cleanup, err := buildPipeline(ctx, config)
		if err != nil {
			logger.Fatalf(err.Error())
		}
		defer cleanup()

		pipeline.Date = exportDate

		report, err := pipeline.Run(ctx)
		for _, step := range report {
			if step.Err != nil {
				logger.Errorf("step %s failed: %v", step.Name, step.Err)
			} else {
				logger.Infof("step %s: %d rows", step.Name, step.Rows)
			}
		}
		if err != nil {
			logger.Fatalf("export failed: %v", err)
		}
	},
}

func buildPipeline(ctx context.Context, config v1.ExportConfig) (*export.Pipeline, func(), error) {
	client, err := github.NewClient(ctx, config.GitHub)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create github client for %s/%s: %w", config.GitHub.Owner, config.GitHub.Repository, err)
	}

	sink, err := warehouse.New(ctx, config.GCP)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to warehouse: %w", err)
	}

	pipeline := &export.Pipeline{
		Fetcher: client,
		Sink:    sink,
		Dir:     config.Output.Dir,
	}

	cleanup := func() {
		if err := sink.Close(); err != nil {
			logger.Warnf("failed to close warehouse clients: %v", err)
		}
	}
	return pipeline, cleanup, nil
}

func init() {
	Export.Flags().StringVar(&exportDate, "date", "", "Target date (YYYY-MM-DD) instead of yesterday, for backfills")
	Export.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Local directory for the NDJSON files")
}
