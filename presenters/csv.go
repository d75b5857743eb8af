package presenters

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kendall-kelly/ecom-reports/models"
)

// WriteFactCSV exports the full fact table with a header row
func WriteFactCSV(w io.Writer, rows []models.FactRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.FactColumns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.CustomerName,
			r.City,
			r.State,
			strconv.FormatUint(uint64(r.OrderID), 10),
			r.OrderDate.String(),
			r.PaymentMethod,
			r.ProductName,
			r.Category,
			strconv.Itoa(r.Quantity),
			strconv.FormatFloat(r.ItemPrice, 'f', -1, 64),
			strconv.FormatFloat(r.TotalAmount, 'f', -1, 64),
			r.ShippingStatus,
			r.DeliveryDate.String(),
			r.Courier,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row for order %d: %w", r.OrderID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
