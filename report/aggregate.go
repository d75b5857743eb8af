package report

import (
	"sort"

	"github.com/kendall-kelly/ecom-reports/models"
	"github.com/shopspring/decimal"
)

// TopN is the length of the top-N aggregates
const TopN = 10

// Measure is the value type of a grouped aggregate
type Measure interface {
	~int | ~float64
}

// Entry is one group of an aggregate
type Entry[V Measure] struct {
	Key   string `json:"key"`
	Value V      `json:"value"`
}

// CourierStat is the delivery record of one courier
type CourierStat struct {
	Courier      string  `json:"courier"`
	Total        int     `json:"total"`
	Delivered    int     `json:"delivered"`
	DeliveryRate float64 `json:"delivery_rate"`
}

// RecentOrder is the subset of a fact row shown in the recent orders table
type RecentOrder struct {
	CustomerName   string      `json:"customer_name"`
	City           string      `json:"city"`
	ProductName    string      `json:"product_name"`
	TotalAmount    float64     `json:"total_amount"`
	ShippingStatus string      `json:"shipping_status"`
	OrderDate      models.Date `json:"order_date"`
}

// groups keeps keys in first-seen order
type groups[V any] struct {
	order []string
	vals  map[string]V
}

func newGroups[V any]() *groups[V] {
	return &groups[V]{vals: map[string]V{}}
}

func (g *groups[V]) at(key string) V {
	v, ok := g.vals[key]
	if !ok {
		g.order = append(g.order, key)
	}
	return v
}

func (g *groups[V]) set(key string, v V) {
	g.vals[key] = v
}

// sortDesc orders entries by value, largest first, keeping first-seen order on ties
func sortDesc[V Measure](entries []Entry[V]) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
}

func limit[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func countBy(rows []models.FactRow, key func(models.FactRow) string) []Entry[int] {
	g := newGroups[int]()
	for _, r := range rows {
		k := key(r)
		g.set(k, g.at(k)+1)
	}
	out := make([]Entry[int], 0, len(g.order))
	for _, k := range g.order {
		out = append(out, Entry[int]{Key: k, Value: g.vals[k]})
	}
	return out
}

func countDistinctOrdersBy(rows []models.FactRow, key func(models.FactRow) string) []Entry[int] {
	g := newGroups[map[uint]struct{}]()
	for _, r := range rows {
		k := key(r)
		set := g.at(k)
		if set == nil {
			set = map[uint]struct{}{}
			g.set(k, set)
		}
		set[r.OrderID] = struct{}{}
	}
	out := make([]Entry[int], 0, len(g.order))
	for _, k := range g.order {
		out = append(out, Entry[int]{Key: k, Value: len(g.vals[k])})
	}
	return out
}

// sumItemPriceBy sums item_price per group. Sums are accumulated as decimals
// so that the result does not depend on row order.
func sumItemPriceBy(rows []models.FactRow, key func(models.FactRow) string) []Entry[float64] {
	g := newGroups[decimal.Decimal]()
	for _, r := range rows {
		k := key(r)
		g.set(k, g.at(k).Add(decimal.NewFromFloat(r.ItemPrice)))
	}
	out := make([]Entry[float64], 0, len(g.order))
	for _, k := range g.order {
		out = append(out, Entry[float64]{Key: k, Value: g.vals[k].InexactFloat64()})
	}
	return out
}

// ShippingStatusDistribution counts fact rows per shipping status, most frequent first
func ShippingStatusDistribution(rows []models.FactRow) []Entry[int] {
	out := countBy(rows, func(r models.FactRow) string { return r.ShippingStatus })
	sortDesc(out)
	return out
}

// TopProducts returns the ten products with the highest summed item price
func TopProducts(rows []models.FactRow) []Entry[float64] {
	out := sumItemPriceBy(rows, func(r models.FactRow) string { return r.ProductName })
	sortDesc(out)
	return limit(out, TopN)
}

// CategorySales returns the summed item price of every category, largest first
func CategorySales(rows []models.FactRow) []Entry[float64] {
	out := sumItemPriceBy(rows, func(r models.FactRow) string { return r.Category })
	sortDesc(out)
	return out
}

// CityOrders returns the ten cities with the most distinct orders
func CityOrders(rows []models.FactRow) []Entry[int] {
	out := countDistinctOrdersBy(rows, func(r models.FactRow) string { return r.City })
	sortDesc(out)
	return limit(out, TopN)
}

// PaymentMethodDistribution counts distinct orders per payment method, by method name
func PaymentMethodDistribution(rows []models.FactRow) []Entry[int] {
	out := countDistinctOrdersBy(rows, func(r models.FactRow) string { return r.PaymentMethod })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// DeliveryRate returns delivered/total as a percentage rounded to two
// decimals. A zero total yields 0.
func DeliveryRate(delivered, total int) float64 {
	if total <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(delivered)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(total)), 2).
		InexactFloat64()
}

// CourierPerformance returns shipments and deliveries per courier, busiest first
func CourierPerformance(rows []models.FactRow) []CourierStat {
	g := newGroups[*CourierStat]()
	for _, r := range rows {
		st := g.at(r.Courier)
		if st == nil {
			st = &CourierStat{Courier: r.Courier}
			g.set(r.Courier, st)
		}
		st.Total++
		if r.ShippingStatus == models.StatusDelivered {
			st.Delivered++
		}
	}

	out := make([]CourierStat, 0, len(g.order))
	for _, k := range g.order {
		st := *g.vals[k]
		st.DeliveryRate = DeliveryRate(st.Delivered, st.Total)
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// RecentOrders returns the ten latest fact rows by order date.
// Rows sharing a date keep their fact table order.
func RecentOrders(rows []models.FactRow) []RecentOrder {
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return rows[idx[a]].OrderDate.After(rows[idx[b]].OrderDate.Time)
	})

	idx = limit(idx, TopN)
	out := make([]RecentOrder, 0, len(idx))
	for _, i := range idx {
		r := rows[i]
		out = append(out, RecentOrder{
			CustomerName:   r.CustomerName,
			City:           r.City,
			ProductName:    r.ProductName,
			TotalAmount:    r.TotalAmount,
			ShippingStatus: r.ShippingStatus,
			OrderDate:      r.OrderDate,
		})
	}
	return out
}
