// Package report assembles the fact table and computes the report aggregates.
package report

import (
	"context"

	"github.com/kendall-kelly/ecom-reports/models"
	"gorm.io/gorm"
)

// FactQuery joins every base table into one row per order line item.
// All joins are inner: an order without a shipping record is left out.
const FactQuery = `
SELECT
    c.name AS customer_name,
    c.city,
    c.state,
    o.order_id,
    o.order_date,
    o.payment_method,
    p.product_name,
    p.category,
    oi.quantity,
    oi.item_price,
    o.total_amount,
    s.shipping_status,
    s.delivery_date,
    s.courier
FROM customers c
INNER JOIN orders o ON c.customer_id = o.customer_id
INNER JOIN order_items oi ON o.order_id = oi.order_id
INNER JOIN products p ON oi.product_id = p.product_id
INNER JOIN shipping s ON o.order_id = s.order_id
ORDER BY o.order_id, oi.order_item_id`

// FactSource produces the fact table
type FactSource interface {
	Assemble(ctx context.Context) ([]models.FactRow, error)
}

// Assembler runs the fact query against the store
type Assembler struct {
	db *gorm.DB
}

// NewAssembler creates an assembler reading through db
func NewAssembler(db *gorm.DB) *Assembler {
	return &Assembler{db: db}
}

// Assemble runs the fact query once on a dedicated connection that is
// released before returning. Any failure, including an expired context,
// is reported as a StorageError.
func (a *Assembler) Assemble(ctx context.Context) ([]models.FactRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, &models.StorageError{Op: "assemble fact table", Err: err}
	}

	var rows []models.FactRow
	err := a.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return conn.Raw(FactQuery).Scan(&rows).Error
	})
	if err != nil {
		return nil, &models.StorageError{Op: "assemble fact table", Err: err}
	}
	if rows == nil {
		rows = []models.FactRow{}
	}
	return rows, nil
}
