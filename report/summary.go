package report

import (
	"github.com/kendall-kelly/ecom-reports/models"
	"github.com/shopspring/decimal"
)

// Summary holds the headline statistics of a fact table
type Summary struct {
	TotalRecords   int     `json:"total_records"`
	TotalCustomers int     `json:"total_customers"`
	TotalOrders    int     `json:"total_orders"`
	TotalProducts  int     `json:"total_products"`
	TotalRevenue   float64 `json:"total_revenue"`
}

// Summarize counts rows and distinct customers, orders and products.
// Revenue sums total_amount over every fact row, so an order with several
// items contributes its total once per item.
func Summarize(rows []models.FactRow) Summary {
	customers := map[string]struct{}{}
	products := map[string]struct{}{}
	orders := map[uint]struct{}{}
	revenue := decimal.Zero

	for _, r := range rows {
		customers[r.CustomerName] = struct{}{}
		products[r.ProductName] = struct{}{}
		orders[r.OrderID] = struct{}{}
		revenue = revenue.Add(decimal.NewFromFloat(r.TotalAmount))
	}

	return Summary{
		TotalRecords:   len(rows),
		TotalCustomers: len(customers),
		TotalOrders:    len(orders),
		TotalProducts:  len(products),
		TotalRevenue:   revenue.Round(2).InexactFloat64(),
	}
}
