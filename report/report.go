package report

import (
	"context"

	"github.com/kendall-kelly/ecom-reports/models"
)

// Report is the fact table together with every aggregate computed from it
type Report struct {
	Facts              []models.FactRow `json:"-"`
	Summary            Summary          `json:"summary"`
	ShippingStatus     []Entry[int]     `json:"shipping_status"`
	TopProducts        []Entry[float64] `json:"top_products"`
	CategorySales      []Entry[float64] `json:"category_sales"`
	CityOrders         []Entry[int]     `json:"city_orders"`
	PaymentMethods     []Entry[int]     `json:"payment_methods"`
	CourierPerformance []CourierStat    `json:"courier_performance"`
	RecentOrders       []RecentOrder    `json:"recent_orders"`
}

// Compute derives every aggregate from one fact table
func Compute(rows []models.FactRow) *Report {
	return &Report{
		Facts:              rows,
		Summary:            Summarize(rows),
		ShippingStatus:     ShippingStatusDistribution(rows),
		TopProducts:        TopProducts(rows),
		CategorySales:      CategorySales(rows),
		CityOrders:         CityOrders(rows),
		PaymentMethods:     PaymentMethodDistribution(rows),
		CourierPerformance: CourierPerformance(rows),
		RecentOrders:       RecentOrders(rows),
	}
}

// Build assembles a fresh fact table and computes every aggregate from it
func Build(ctx context.Context, src FactSource) (*Report, error) {
	rows, err := src.Assemble(ctx)
	if err != nil {
		return nil, err
	}
	return Compute(rows), nil
}
