package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kendall-kelly/ecom-reports/models"
	"github.com/kendall-kelly/ecom-reports/presenters"
	"github.com/kendall-kelly/ecom-reports/report"
	"github.com/kendall-kelly/ecom-reports/utils"
	"go.uber.org/zap"
)

// Batch report file names
const (
	ReportCSV         = "ecommerce_report.csv"
	ReportPDF         = "ecommerce_report.pdf"
	ReportDOCX        = "ecommerce_report.docx"
	StatusChartPNG    = "shipping_status_chart.png"
	ProductsChartPNG  = "top_products_chart.png"
	statusChartTitle  = "Shipping Status Distribution"
	productChartTitle = "Top 10 Products by Revenue"
)

// GenerateResult describes one batch report run
type GenerateResult struct {
	RunID     string
	Report    *report.Report
	Files     []string
	Published []Artifact
}

// ReportService produces the batch report files
type ReportService struct {
	source    report.FactSource
	outDir    string
	timeout   time.Duration
	log       *zap.Logger
	publisher ArtifactService
	writers   []presenters.DocumentWriter
	now       func() time.Time
}

// NewReportService creates a report generator writing into outDir.
// The fact table fetch and aggregation run under timeout.
func NewReportService(source report.FactSource, outDir string, timeout time.Duration, log *zap.Logger) *ReportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportService{
		source:  source,
		outDir:  outDir,
		timeout: timeout,
		log:     log,
		writers: []presenters.DocumentWriter{presenters.NewPDFWriter(), presenters.NewDOCXWriter()},
		now:     time.Now,
	}
}

// WithPublisher uploads every generated file through p after a run
func (s *ReportService) WithPublisher(p ArtifactService) *ReportService {
	s.publisher = p
	return s
}

// Generate fetches the fact table once, computes every aggregate and
// writes the CSV export, both chart images and both documents
func (s *ReportService) Generate(ctx context.Context) (*GenerateResult, error) {
	runID := uuid.NewString()
	log := s.log.With(zap.String("run_id", runID))

	r, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("Query executed successfully", zap.Int("records", len(r.Facts)))
	s.logSummary(log, r)

	if err := utils.EnsureDir(s.outDir); err != nil {
		return nil, err
	}

	result := &GenerateResult{RunID: runID, Report: r}
	write := func(name string, render func(io.Writer) error) error {
		path := filepath.Join(s.outDir, name)
		if err := utils.WriteFile(path, render); err != nil {
			return err
		}
		result.Files = append(result.Files, path)
		log.Info("Wrote report file", zap.String("path", path))
		return nil
	}

	if err := write(ReportCSV, func(w io.Writer) error {
		return presenters.WriteFactCSV(w, r.Facts)
	}); err != nil {
		return nil, err
	}

	charts := []presenters.ChartImage{
		s.chart(log, statusChartTitle, func(w io.Writer) error {
			return presenters.PiePNG(w, statusChartTitle, r.ShippingStatus)
		}),
		s.chart(log, productChartTitle, func(w io.Writer) error {
			return presenters.BarPNG(w, productChartTitle, r.TopProducts)
		}),
	}
	for i, name := range []string{StatusChartPNG, ProductsChartPNG} {
		png := charts[i].PNG
		if err := write(name, func(w io.Writer) error {
			_, err := w.Write(png)
			return err
		}); err != nil {
			return nil, err
		}
	}

	doc := presenters.NewDocument(r, charts, s.now())
	for _, dw := range s.writers {
		if err := write("ecommerce_report"+dw.Extension(), func(w io.Writer) error {
			return dw.Write(w, doc)
		}); err != nil {
			return nil, err
		}
	}

	if s.publisher != nil {
		for _, path := range result.Files {
			artifact, err := s.publisher.Publish(ctx, runID, path)
			if err != nil {
				s.unpublish(ctx, log, result)
				return result, err
			}
			result.Published = append(result.Published, artifact)
		}
	}

	log.Info("Report generated", zap.Int("files", len(result.Files)), zap.Int("published", len(result.Published)))
	return result, nil
}

// unpublish removes the artifacts already uploaded by a run whose
// publishing failed partway
func (s *ReportService) unpublish(ctx context.Context, log *zap.Logger, result *GenerateResult) {
	for _, a := range result.Published {
		if err := s.publisher.Remove(ctx, a.Key); err != nil {
			log.Error("Failed to remove partially published artifact", zap.String("key", a.Key), zap.Error(err))
			continue
		}
		log.Info("Removed partially published artifact", zap.String("key", a.Key))
	}
	result.Published = nil
}

func (s *ReportService) build(ctx context.Context) (*report.Report, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return report.Build(ctx, s.source)
}

// chart renders an image, keeping the placeholder for an empty aggregate
func (s *ReportService) chart(log *zap.Logger, title string, render func(io.Writer) error) presenters.ChartImage {
	data, err := presenters.RenderPNG(render)
	switch {
	case errors.Is(err, models.ErrEmptyAggregate):
		log.Warn("Chart has no data, using placeholder", zap.String("chart", title))
	case err != nil:
		log.Warn("Chart rendering failed, using placeholder", zap.String("chart", title), zap.Error(err))
		data, _ = presenters.RenderPNG(func(w io.Writer) error {
			return presenters.PlaceholderPNG(w, title)
		})
	}
	return presenters.ChartImage{Title: title, PNG: data}
}

func (s *ReportService) logSummary(log *zap.Logger, r *report.Report) {
	log.Info("Report statistics",
		zap.Int("total_records", r.Summary.TotalRecords),
		zap.Int("unique_customers", r.Summary.TotalCustomers),
		zap.Int("unique_orders", r.Summary.TotalOrders),
		zap.Int("unique_products", r.Summary.TotalProducts),
		zap.String("total_revenue", presenters.FormatCurrency(r.Summary.TotalRevenue)),
	)

	for _, e := range r.ShippingStatus {
		log.Info("Shipping status", zap.String("status", e.Key), zap.Int("count", e.Value))
	}

	sample := r.Facts
	if len(sample) > presenters.SampleSize {
		sample = sample[:presenters.SampleSize]
	}
	for i, row := range sample {
		log.Info(fmt.Sprintf("Sample row %d", i+1),
			zap.String("customer_name", row.CustomerName),
			zap.String("city", row.City),
			zap.Uint("order_id", row.OrderID),
			zap.Stringer("order_date", row.OrderDate),
			zap.String("product_name", row.ProductName),
			zap.Int("quantity", row.Quantity),
			zap.Float64("item_price", row.ItemPrice),
			zap.Float64("total_amount", row.TotalAmount),
			zap.String("shipping_status", row.ShippingStatus),
			zap.Stringer("delivery_date", row.DeliveryDate),
		)
	}
}
