package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/ecom-reports/controllers"
	"github.com/kendall-kelly/ecom-reports/middleware"
	"github.com/kendall-kelly/ecom-reports/models"
	"github.com/kendall-kelly/ecom-reports/report"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// routerDeps holds everything the HTTP routes need
type routerDeps struct {
	db          *gorm.DB
	source      report.FactSource
	reportDir   string
	timeout     time.Duration
	corsOrigins []string
	log         *zap.Logger
}

// setupRouter creates and configures the router with every route
func setupRouter(deps routerDeps) (*gin.Engine, error) {
	if deps.log == nil {
		deps.log = zap.NewNop()
	}
	if deps.source == nil {
		deps.source = report.NewAssembler(deps.db)
	}

	tmpl, err := controllers.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(
		middleware.Recovery(deps.log),
		middleware.RequestID(),
		middleware.RequestLogger(deps.log),
		cors.New(corsConfig(deps.corsOrigins)),
	)

	reports := controllers.NewReportController(deps.source, deps.log)
	artifacts := controllers.NewArtifactController(deps.reportDir)

	router.GET("/", middleware.Timeout(deps.timeout), reports.Index)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus(deps.db))

		v1.GET("/reports", artifacts.List)
		v1.GET("/reports/:filename", artifacts.Get)

		// Every aggregate endpoint assembles the fact table under the request timeout
		agg := v1.Group("", middleware.Timeout(deps.timeout))
		agg.GET("/summary", reports.Summary)
		agg.GET("/shipping_status", reports.ShippingStatus)
		agg.GET("/top_products", reports.TopProducts)
		agg.GET("/category_sales", reports.CategorySales)
		agg.GET("/city_orders", reports.CityOrders)
		agg.GET("/payment_methods", reports.PaymentMethods)
		agg.GET("/courier_performance", reports.CourierPerformance)
		agg.GET("/recent_orders", reports.RecentOrders)
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cfg
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "E-commerce reports API is running",
	})
}

// databaseStatus checks database connectivity and reports which base tables exist
func databaseStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to get database instance",
				},
			})
			return
		}

		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STORAGE_UNAVAILABLE",
					"message": "Database connection failed",
				},
			})
			return
		}

		tables, err := db.WithContext(c.Request.Context()).Migrator().GetTables()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STORAGE_UNAVAILABLE",
					"message": "Failed to query tables",
				},
			})
			return
		}

		present := make(map[string]bool, len(tables))
		for _, t := range tables {
			present[t] = true
		}
		missing := []string{}
		for _, t := range models.TableNames() {
			if !present[t] {
				missing = append(missing, t)
			}
		}
		if tables == nil {
			tables = []string{}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Database connected",
			"tables":  tables,
			"missing": missing,
		})
	}
}
