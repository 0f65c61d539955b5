package cmd

import (
	"fmt"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Root ...
var Root = &cobra.Command{
	Use:   "workflow-db",
	Short: "Export GitHub Actions workflow runs and jobs into BigQuery",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.UseZap()
	},
}

func init() {
	logger.BindFlags(Root.PersistentFlags())

	if len(commit) > 8 {
		version = fmt.Sprintf("%v, commit %v, built at %v", version, commit[0:8], date)
	}
	Root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version of workflow-db",
		Args:  cobra.MinimumNArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	Root.AddCommand(Export, Serve)
}
