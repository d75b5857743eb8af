package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/ecom-reports/models"
	"github.com/kendall-kelly/ecom-reports/presenters"
	"github.com/kendall-kelly/ecom-reports/report"
	"go.uber.org/zap"
)

// ReportController serves the dashboard page and one endpoint per aggregate.
// Every request assembles a fresh fact table.
type ReportController struct {
	source report.FactSource
	log    *zap.Logger
}

// NewReportController creates a controller reading facts from source
func NewReportController(source report.FactSource, log *zap.Logger) *ReportController {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportController{source: source, log: log}
}

// respondError writes the error envelope; storage failures are 503
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := "Failed to build report"
	if errors.Is(err, models.ErrStorageUnavailable) {
		status = http.StatusServiceUnavailable
		message = "Report storage is unavailable"
	}

	log.Error("Report request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	_ = c.Error(err)
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    models.ErrorCode(err),
			"message": message,
		},
	})
}

// facts assembles the fact table under the request's deadline
func (rc *ReportController) facts(c *gin.Context) ([]models.FactRow, bool) {
	rows, err := rc.source.Assemble(c.Request.Context())
	if err != nil {
		respondError(c, rc.log, err)
		return nil, false
	}
	return rows, true
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// Index handles GET / - renders the dashboard with overall statistics
func (rc *ReportController) Index(c *gin.Context) {
	rows, ok := rc.facts(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"stats": presenters.SummaryStats(report.Summarize(rows)),
	})
}

// Summary handles GET /api/v1/summary - overall statistics
func (rc *ReportController) Summary(c *gin.Context) {
	rows, ok := rc.facts(c)
	if !ok {
		return
	}
	success(c, report.Summarize(rows))
}

// ShippingStatus handles GET /api/v1/shipping_status - pie of shipping statuses
func (rc *ReportController) ShippingStatus(c *gin.Context) {
	rows, ok := rc.facts(c)
	if !ok {
		return
	}
	success(c, presenters.ShippingStatusChart(report.ShippingStatusDistribution(rows)))
}

// TopProducts handles GET /api/v1/top_products - top 10 products by revenue
func (rc *ReportController) TopProducts(c *gin.Context) {
	rows, ok := rc.facts(c)
	if !ok {
		return
	}
	success(c, presenters.TopProductsChart(report.TopProducts(rows)))
}

// CategorySales handles GET /api/v1/category_sales - revenue per category
func (rc *ReportController) CategorySales(c *gin.Context) {
	rows, ok := rc.facts(c)
	if !ok {
		return
	}
	success(c, presenters.CategorySalesChart(report.CategorySales(rows)))
}

// CityOrders handles GET /api/v1/city_orders - top 10 cities by orders
func (rc *ReportController) CityOrders(c *gin.Context) {
	rows, ok := rc.facts(c)
	if !ok {
		return
	}
	success(c, presenters.CityOrdersChart(report.CityOrders(rows)))
}

// PaymentMethods handles GET /api/v1/payment_methods - orders per payment method
func (rc *ReportController) PaymentMethods(c *gin.Context) {
	rows, ok := rc.facts(c)
	if !ok {
		return
	}
	success(c, presenters.PaymentMethodsChart(report.PaymentMethodDistribution(rows)))
}

// CourierPerformance handles GET /api/v1/courier_performance - shipments vs deliveries per courier
func (rc *ReportController) CourierPerformance(c *gin.Context) {
	rows, ok := rc.facts(c)
	if !ok {
		return
	}
	success(c, presenters.CourierPerformanceChart(report.CourierPerformance(rows)))
}

// RecentOrders handles GET /api/v1/recent_orders - the ten latest orders
func (rc *ReportController) RecentOrders(c *gin.Context) {
	rows, ok := rc.facts(c)
	if !ok {
		return
	}
	success(c, presenters.RecentOrdersTable(report.RecentOrders(rows)))
}
