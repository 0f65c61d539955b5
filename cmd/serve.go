package cmd

import (
	"context"
	"fmt"

	"github.com/flanksource/commons/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/flanksource/workflow-db/jobs"
)

var httpPort int
var schedule string
var runOnStart bool

// Serve ...
var Serve = &cobra.Command{
	Use:   "serve <config.yaml>",
	Short: "Run the export on a daily schedule",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		serve(args[0])
	},
}

func serve(configFile string) {
	config, err := ParseConfig(configFile)
	if err != nil {
		logger.Fatalf(err.Error())
	}

	ctx := context.Background()
	pipeline, cleanup, err := buildPipeline(ctx, config)
	if err != nil {
		logger.Fatalf(err.Error())
	}
	defer cleanup()

	runExport := func() {
		// Date left empty so every trigger re-resolves yesterday.
		if _, err := pipeline.Run(ctx); err != nil {
			logger.Errorf("scheduled export failed: %v", err)
		}
	}

	if err := jobs.ScheduleExport(schedule, runExport); err != nil {
		logger.Fatalf(err.Error())
	}
	defer jobs.Stop()
	logger.Infof("scheduled export of %s/%s at %q", config.GitHub.Owner, config.GitHub.Repository, schedule)

	if runOnStart {
		go runExport()
	}

	e := echo.New()
	e.HideBanner = true
	if logger.IsTraceEnabled() {
		e.Use(middleware.Logger())
	}

	e.GET("/live", func(c echo.Context) error {
		return c.String(200, "OK")
	})
	e.GET("/ready", func(c echo.Context) error {
		return c.String(200, "OK")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if err := e.Start(fmt.Sprintf(":%d", httpPort)); err != nil {
		e.Logger.Fatal(err)
	}
}

// ServeFlags ...
func ServeFlags(flags *pflag.FlagSet) {
	flags.IntVar(&httpPort, "httpPort", 8080, "Port for health and metrics endpoints")
	flags.StringVar(&schedule, "schedule", "@daily", "Cron schedule for the export")
	flags.BoolVar(&runOnStart, "run-on-start", false, "Run one export immediately on startup")
}

func init() {
	ServeFlags(Serve.Flags())
}
