package presenters

import (
	"strconv"

	"github.com/kendall-kelly/ecom-reports/models"
	"github.com/kendall-kelly/ecom-reports/report"
)

// RecentOrderRow is one display row of the recent orders table
type RecentOrderRow struct {
	CustomerName   string  `json:"customer_name"`
	City           string  `json:"city"`
	ProductName    string  `json:"product_name"`
	TotalAmount    float64 `json:"total_amount"`
	Amount         string  `json:"amount"`
	ShippingStatus string  `json:"shipping_status"`
	OrderDate      string  `json:"order_date"`
}

// RecentOrdersTable maps the recent orders aggregate to display rows
func RecentOrdersTable(orders []report.RecentOrder) []RecentOrderRow {
	rows := make([]RecentOrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, RecentOrderRow{
			CustomerName:   o.CustomerName,
			City:           o.City,
			ProductName:    o.ProductName,
			TotalAmount:    o.TotalAmount,
			Amount:         FormatCurrency(o.TotalAmount),
			ShippingStatus: o.ShippingStatus,
			OrderDate:      o.OrderDate.String(),
		})
	}
	return rows
}

// Table is a header plus text rows
type Table struct {
	Header []string
	Rows   [][]string
}

// SampleColumns are the fact columns shown in the document sample table
var SampleColumns = []string{"Order", "Customer", "City", "Product", "Qty", "Price", "Status", "Delivered"}

// SampleTable renders the given fact rows as document table rows
func SampleTable(rows []models.FactRow) Table {
	t := Table{Header: SampleColumns, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.FormatUint(uint64(r.OrderID), 10),
			r.CustomerName,
			r.City,
			r.ProductName,
			strconv.Itoa(r.Quantity),
			FormatCurrency(r.ItemPrice),
			r.ShippingStatus,
			r.DeliveryDate.String(),
		})
	}
	return t
}

// StatusTable renders the shipping status distribution
func StatusTable(entries []report.Entry[int]) Table {
	t := Table{Header: []string{"Status", "Orders"}, Rows: make([][]string, 0, len(entries))}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{e.Key, FormatCount(e.Value)})
	}
	return t
}
