package report

import (
	"context"
	"testing"
	"time"

	"github.com/kendall-kelly/ecom-reports/models"
	"github.com/kendall-kelly/ecom-reports/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleSingleOrder(t *testing.T) {
	db := testutil.NewMigratedDB(t)
	testutil.Seed(t, db, testutil.SingleOrderDataset())

	rows, err := NewAssembler(db).Assemble(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, models.FactRow{
		CustomerName:   "A",
		City:           "X",
		State:          "S",
		OrderID:        1,
		OrderDate:      models.NewDate(2024, time.January, 1),
		PaymentMethod:  "Card",
		ProductName:    "P",
		Category:       "C",
		Quantity:       2,
		ItemPrice:      10,
		TotalAmount:    20,
		ShippingStatus: "Delivered",
		DeliveryDate:   models.NewDate(2024, time.January, 2),
		Courier:        "X",
	}, rows[0])
}

func TestAssembleExcludesOrdersWithoutShipping(t *testing.T) {
	db := testutil.NewMigratedDB(t)
	data := testutil.StoreDataset()
	testutil.Seed(t, db, data)

	rows, err := NewAssembler(db).Assemble(context.Background())
	require.NoError(t, err)

	shipped := map[uint]bool{}
	for _, s := range data.Shipping {
		shipped[s.OrderID] = true
	}
	expected := 0
	for _, it := range data.OrderItems {
		if shipped[it.OrderID] {
			expected++
		}
	}

	assert.Len(t, rows, expected, "one row per order item whose order has a shipping record")
	for _, r := range rows {
		assert.NotEqual(t, uint(5), r.OrderID, "order 5 has no shipping record")
	}

	r := Compute(rows)
	assert.Equal(t, 4, r.Summary.TotalOrders)
	for _, e := range r.PaymentMethods {
		if e.Key == "UPI" {
			assert.Equal(t, 2, e.Value, "the unshipped UPI order is not counted")
		}
	}
}

func TestAssembleOrdering(t *testing.T) {
	db := testutil.NewMigratedDB(t)
	testutil.Seed(t, db, testutil.StoreDataset())

	rows, err := NewAssembler(db).Assemble(context.Background())
	require.NoError(t, err)

	var got []string
	for _, r := range rows {
		got = append(got, r.ProductName)
	}
	assert.Equal(t, []string{"Laptop", "Headphones", "Novel", "Kettle", "Novel", "Headphones"}, got)
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i-1].OrderID, rows[i].OrderID)
	}
}

func TestAssembleEmptyStore(t *testing.T) {
	db := testutil.NewMigratedDB(t)

	rows, err := NewAssembler(db).Assemble(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestAssembleStorageUnavailable(t *testing.T) {
	t.Run("missing tables", func(t *testing.T) {
		db := testutil.NewTestDB(t)

		_, err := NewAssembler(db).Assemble(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrStorageUnavailable)

		var storageErr *models.StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "assemble fact table", storageErr.Op)
	})

	t.Run("closed connection pool", func(t *testing.T) {
		db := testutil.NewMigratedDB(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		_, err = NewAssembler(db).Assemble(context.Background())
		assert.ErrorIs(t, err, models.ErrStorageUnavailable)
	})

	t.Run("expired deadline", func(t *testing.T) {
		db := testutil.NewMigratedDB(t)
		testutil.Seed(t, db, testutil.SingleOrderDataset())

		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()

		_, err := NewAssembler(db).Assemble(ctx)
		assert.ErrorIs(t, err, models.ErrStorageUnavailable)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestBuild(t *testing.T) {
	db := testutil.NewMigratedDB(t)
	testutil.Seed(t, db, testutil.SingleOrderDataset())

	r, err := Build(context.Background(), NewAssembler(db))
	require.NoError(t, err)

	assert.Equal(t, []Entry[int]{{Key: "Delivered", Value: 1}}, r.ShippingStatus)
	assert.Equal(t, []Entry[float64]{{Key: "P", Value: 10}}, r.TopProducts)
	assert.Equal(t, []Entry[float64]{{Key: "C", Value: 10}}, r.CategorySales)
	assert.Equal(t, []CourierStat{{Courier: "X", Total: 1, Delivered: 1, DeliveryRate: 100}}, r.CourierPerformance)
	assert.Equal(t, 20.0, r.Summary.TotalRevenue)
}

type failingSource struct{ err error }

func (f failingSource) Assemble(context.Context) ([]models.FactRow, error) { return nil, f.err }

func TestBuildPropagatesErrors(t *testing.T) {
	cause := &models.StorageError{Op: "assemble fact table", Err: context.Canceled}
	_, err := Build(context.Background(), failingSource{err: cause})
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)
}
