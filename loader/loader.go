// Package loader bulk-loads the five source CSV files into the store.
//
// Tables are loaded one at a time in foreign-key-safe order. Each table is
// validated completely before anything is written and then inserted inside a
// single transaction, so a failing table leaves no rows behind. Tables loaded
// before the failure are kept: the run is not transactional across tables.
package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kendall-kelly/ecom-reports/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultBatchSize is the number of rows per INSERT statement
const DefaultBatchSize = 500

// TableCount is the number of rows in (or inserted into) one table
type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// Result reports the rows inserted per table, in load order
type Result struct {
	Tables []TableCount `json:"tables"`
}

// Total returns the number of rows inserted across all tables
func (r Result) Total() int64 {
	var total int64
	for _, t := range r.Tables {
		total += t.Rows
	}
	return total
}

// Loader loads CSV files into the base tables
type Loader struct {
	db        *gorm.DB
	log       *zap.Logger
	batchSize int
}

// New creates a loader writing through db
func New(db *gorm.DB, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{db: db, log: log, batchSize: DefaultBatchSize}
}

// WithBatchSize overrides the number of rows per INSERT
func (l *Loader) WithBatchSize(n int) *Loader {
	if n > 0 {
		l.batchSize = n
	}
	return l
}

// keys tracks primary keys known to exist, for foreign key checks
type keys struct {
	customers map[uint]struct{}
	products  map[uint]struct{}
	orders    map[uint]struct{}
	items     map[uint]struct{}
	shipments map[uint]struct{}
	shipped   map[uint]struct{} // orders that already have a shipping record
}

type tableSpec struct {
	table   string
	file    string
	columns []string
	load    func(ctx context.Context, l *Loader, f *csvFile, k *keys) (int64, error)
}

var tableSpecs = []tableSpec{
	{
		table:   "customers",
		file:    "customers.csv",
		columns: []string{"customer_id", "name", "email", "phone", "city", "state", "signup_date"},
		load: func(ctx context.Context, l *Loader, f *csvFile, k *keys) (int64, error) {
			return loadRows(ctx, l, f, func(p *rowParser) models.Customer {
				c := models.Customer{
					CustomerID: p.id("customer_id"),
					Name:       p.text("name"),
					Email:      p.raw("email"),
					Phone:      p.raw("phone"),
					City:       p.text("city"),
					State:      p.text("state"),
					SignupDate: p.date("signup_date"),
				}
				claim(p, k.customers, "customer_id", c.CustomerID)
				return c
			})
		},
	},
	{
		table:   "products",
		file:    "products.csv",
		columns: []string{"product_id", "product_name", "category", "price", "stock_qty"},
		load: func(ctx context.Context, l *Loader, f *csvFile, k *keys) (int64, error) {
			return loadRows(ctx, l, f, func(p *rowParser) models.Product {
				pr := models.Product{
					ProductID:   p.id("product_id"),
					ProductName: p.text("product_name"),
					Category:    p.text("category"),
					Price:       p.amount("price"),
					StockQty:    p.count("stock_qty"),
				}
				claim(p, k.products, "product_id", pr.ProductID)
				return pr
			})
		},
	},
	{
		table:   "orders",
		file:    "orders.csv",
		columns: []string{"order_id", "customer_id", "order_date", "payment_method", "total_amount"},
		load: func(ctx context.Context, l *Loader, f *csvFile, k *keys) (int64, error) {
			return loadRows(ctx, l, f, func(p *rowParser) models.Order {
				o := models.Order{
					OrderID:       p.id("order_id"),
					CustomerID:    p.id("customer_id"),
					OrderDate:     p.date("order_date"),
					PaymentMethod: p.text("payment_method"),
					TotalAmount:   p.amount("total_amount"),
				}
				reference(p, k.customers, "customer_id", o.CustomerID, "customers")
				claim(p, k.orders, "order_id", o.OrderID)
				return o
			})
		},
	},
	{
		table:   "order_items",
		file:    "order_items.csv",
		columns: []string{"order_item_id", "order_id", "product_id", "quantity", "item_price", "line_total"},
		load: func(ctx context.Context, l *Loader, f *csvFile, k *keys) (int64, error) {
			return loadRows(ctx, l, f, func(p *rowParser) models.OrderItem {
				it := models.OrderItem{
					OrderItemID: p.id("order_item_id"),
					OrderID:     p.id("order_id"),
					ProductID:   p.id("product_id"),
					Quantity:    p.count("quantity"),
					ItemPrice:   p.amount("item_price"),
					LineTotal:   p.amount("line_total"),
				}
				reference(p, k.orders, "order_id", it.OrderID, "orders")
				reference(p, k.products, "product_id", it.ProductID, "products")
				claim(p, k.items, "order_item_id", it.OrderItemID)
				return it
			})
		},
	},
	{
		table:   "shipping",
		file:    "shipping.csv",
		columns: []string{"shipping_id", "order_id", "shipping_date", "delivery_date", "shipping_status", "courier"},
		load: func(ctx context.Context, l *Loader, f *csvFile, k *keys) (int64, error) {
			return loadRows(ctx, l, f, func(p *rowParser) models.Shipping {
				s := models.Shipping{
					ShippingID:     p.id("shipping_id"),
					OrderID:        p.id("order_id"),
					ShippingDate:   p.date("shipping_date"),
					DeliveryDate:   p.date("delivery_date"),
					ShippingStatus: p.text("shipping_status"),
					Courier:        p.text("courier"),
				}
				reference(p, k.orders, "order_id", s.OrderID, "orders")
				claim(p, k.shipped, "order_id", s.OrderID)
				claim(p, k.shipments, "shipping_id", s.ShippingID)
				return s
			})
		},
	},
}

// Files returns the expected input file names in load order
func Files() []string {
	out := make([]string, len(tableSpecs))
	for i, spec := range tableSpecs {
		out[i] = spec.file
	}
	return out
}

// claim records a unique key, failing the row on a duplicate
func claim(p *rowParser, set map[uint]struct{}, column string, id uint) {
	if p.err != nil {
		return
	}
	if _, dup := set[id]; dup {
		p.fail(column, "duplicate value %d", id)
		return
	}
	set[id] = struct{}{}
}

// reference fails the row when id is not a known key of the parent table
func reference(p *rowParser, set map[uint]struct{}, column string, id uint, parent string) {
	if p.err != nil {
		return
	}
	if _, ok := set[id]; !ok {
		p.fail(column, "references missing %s row %d", parent, id)
	}
}

// loadRows parses every row first, then inserts them all in one transaction
func loadRows[T any](ctx context.Context, l *Loader, f *csvFile, parse func(p *rowParser) T) (int64, error) {
	records := make([]T, 0, len(f.rows))
	for i := range f.rows {
		p := f.parser(i)
		rec := parse(p)
		if p.err != nil {
			return 0, p.err
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return 0, nil
	}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).CreateInBatches(&records, l.batchSize).Error
	})
	if err != nil {
		if isConstraintError(err) {
			return 0, &models.SchemaError{Table: f.table, File: f.name, Message: err.Error()}
		}
		return 0, &models.StorageError{Op: "insert " + f.table, Err: err}
	}
	return int64(len(records)), nil
}

// isConstraintError detects key and check violations (works with both PostgreSQL and SQLite)
func isConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "check constraint") ||
		strings.Contains(msg, "not null constraint")
}

// LoadDir creates any missing tables and loads the five CSV files found in dir
func (l *Loader) LoadDir(ctx context.Context, dir string) (Result, error) {
	var result Result

	if err := models.Migrate(l.db.WithContext(ctx)); err != nil {
		return result, &models.StorageError{Op: "create tables", Err: err}
	}
	l.log.Info("Tables ready", zap.Strings("tables", models.TableNames()))

	k, err := l.existingKeys(ctx)
	if err != nil {
		return result, err
	}

	for _, spec := range tableSpecs {
		path := filepath.Join(dir, spec.file)
		f, err := readCSV(path, spec.table, spec.columns)
		if err != nil {
			return result, fmt.Errorf("load %s: %w", spec.table, err)
		}

		n, err := spec.load(ctx, l, f, k)
		if err != nil {
			l.log.Error("Load aborted", zap.String("table", spec.table), zap.Error(err))
			return result, fmt.Errorf("load %s: %w", spec.table, err)
		}

		result.Tables = append(result.Tables, TableCount{Table: spec.table, Rows: n})
		l.log.Info("Inserted records", zap.String("table", spec.table), zap.Int64("rows", n), zap.String("file", spec.file))
	}
	return result, nil
}

// existingKeys seeds the key sets with rows already present in the store
func (l *Loader) existingKeys(ctx context.Context) (*keys, error) {
	k := &keys{}
	targets := []struct {
		model  interface{}
		column string
		set    *map[uint]struct{}
	}{
		{&models.Customer{}, "customer_id", &k.customers},
		{&models.Product{}, "product_id", &k.products},
		{&models.Order{}, "order_id", &k.orders},
		{&models.OrderItem{}, "order_item_id", &k.items},
		{&models.Shipping{}, "shipping_id", &k.shipments},
		{&models.Shipping{}, "order_id", &k.shipped},
	}
	for _, t := range targets {
		var ids []uint
		if err := l.db.WithContext(ctx).Model(t.model).Pluck(t.column, &ids).Error; err != nil {
			return nil, &models.StorageError{Op: "read existing keys", Err: err}
		}
		*t.set = make(map[uint]struct{}, len(ids))
		for _, id := range ids {
			(*t.set)[id] = struct{}{}
		}
	}
	return k, nil
}

// Reset drops and recreates the base tables
func (l *Loader) Reset(ctx context.Context) error {
	db := l.db.WithContext(ctx)
	if err := models.DropAll(db); err != nil {
		return &models.StorageError{Op: "drop tables", Err: err}
	}
	if err := models.Migrate(db); err != nil {
		return &models.StorageError{Op: "create tables", Err: err}
	}
	l.log.Info("Schema recreated", zap.Strings("tables", models.TableNames()))
	return nil
}

// RowCounts returns the current row count of every base table
func (l *Loader) RowCounts(ctx context.Context) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(tableSpecs))
	for _, name := range models.TableNames() {
		var n int64
		if err := l.db.WithContext(ctx).Table(name).Count(&n).Error; err != nil {
			return nil, &models.StorageError{Op: "count " + name, Err: err}
		}
		counts = append(counts, TableCount{Table: name, Rows: n})
	}
	return counts, nil
}
