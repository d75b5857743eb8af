package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kendall-kelly/ecom-reports/config"
	"github.com/kendall-kelly/ecom-reports/loader"
	"github.com/kendall-kelly/ecom-reports/models"
	"github.com/kendall-kelly/ecom-reports/report"
	"github.com/kendall-kelly/ecom-reports/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard web server",
	RunE:  runServe,
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the CSV exports into the database",
	Long: `Loads customers.csv, products.csv, orders.csv, order_items.csv and
shipping.csv in foreign-key order. A file that does not match its table
aborts the run; that table is left without any of the file's rows.`,
	RunE: runLoad,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the batch report files",
	RunE:  runReport,
}

func withDatabase(ctx context.Context, fn func(db *gorm.DB) error) error {
	db, err := config.OpenDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return &models.StorageError{Op: "open database", Err: err}
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			appLog.Warn("Failed to close database", zap.Error(err))
		}
	}()
	return fn(db)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return withDatabase(ctx, func(db *gorm.DB) error {
		if err := models.Migrate(db); err != nil {
			return &models.StorageError{Op: "migrate schema", Err: err}
		}

		router, err := setupRouter(routerDeps{
			db:          db,
			source:      report.NewAssembler(db),
			reportDir:   cfg.ReportDir,
			timeout:     cfg.ReportTimeout,
			corsOrigins: cfg.CORSAllowedOrigins,
			log:         appLog,
		})
		if err != nil {
			return err
		}

		server := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			appLog.Info("Server is running", zap.String("addr", "http://localhost:"+cfg.Port), zap.String("env", cfg.GoEnv))
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("failed to start server: %w", err)
		case <-ctx.Done():
			appLog.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		}
	})
}

func runLoad(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	fresh, _ := cmd.Flags().GetBool("fresh")

	return withDatabase(cmd.Context(), func(db *gorm.DB) error {
		l := loader.New(db, appLog)
		if fresh {
			if err := l.Reset(cmd.Context()); err != nil {
				return err
			}
		}

		result, err := l.LoadDir(cmd.Context(), dataDir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Loaded:")
		for _, tc := range result.Tables {
			fmt.Fprintf(out, "  %-12s %d rows\n", tc.Table, tc.Rows)
		}
		fmt.Fprintf(out, "  %-12s %d rows\n", "total", result.Total())

		counts, err := l.RowCounts(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Database now holds:")
		for _, tc := range counts {
			fmt.Fprintf(out, "  %-12s %d rows\n", tc.Table, tc.Rows)
		}
		return nil
	})
}

func runReport(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = cfg.ReportDir
	}
	publish, _ := cmd.Flags().GetBool("publish")
	if publish && !cfg.PublishEnabled() {
		return fmt.Errorf("--publish requires AWS_S3_BUCKET")
	}

	return withDatabase(cmd.Context(), func(db *gorm.DB) error {
		svc := services.NewReportService(report.NewAssembler(db), outDir, cfg.ReportTimeout, appLog)
		if publish {
			s3Service, err := services.NewS3Service(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			svc.WithPublisher(services.NewArtifactService(s3Service, appLog))
		}

		result, err := svc.Generate(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Report %s generated:\n", result.RunID)
		for _, f := range result.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}
		for _, a := range result.Published {
			fmt.Fprintf(out, "  published %s\n", a.URL)
		}
		return nil
	})
}
