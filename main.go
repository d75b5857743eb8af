package main

import (
	"fmt"
	"os"

	"github.com/kendall-kelly/ecom-reports/config"
	"github.com/kendall-kelly/ecom-reports/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	appLog *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ecom-reports",
	Short: "E-commerce sales reporting",
	Long: `ecom-reports loads the shop's CSV exports into a relational store and
reports on them: a web dashboard with one JSON endpoint per chart, and a
batch report written as CSV, PDF, DOCX and chart images.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// Batch commands log human-readable progress to stdout
		if cmd.Name() == serveCmd.Name() {
			appLog, err = logger.New(cfg.LogLevel, cfg.GoEnv)
		} else {
			appLog, err = logger.NewConsole(cmd.OutOrStdout(), cfg.LogLevel)
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLog != nil {
			_ = appLog.Sync()
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, loadCmd, reportCmd)

	loadCmd.Flags().String("data-dir", "", "directory holding the five CSV files (default DATA_DIR)")
	loadCmd.Flags().Bool("fresh", false, "drop and recreate every table before loading")

	reportCmd.Flags().String("out", "", "directory for the generated files (default REPORT_DIR)")
	reportCmd.Flags().Bool("publish", false, "upload the generated files to AWS_S3_BUCKET")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
