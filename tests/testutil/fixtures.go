package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kendall-kelly/ecom-reports/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Dataset is a set of base table rows
type Dataset struct {
	Customers  []models.Customer
	Products   []models.Product
	Orders     []models.Order
	OrderItems []models.OrderItem
	Shipping   []models.Shipping
}

// SingleOrderDataset is one customer buying two units of one product,
// delivered by courier X.
func SingleOrderDataset() Dataset {
	return Dataset{
		Customers: []models.Customer{
			{CustomerID: 1, Name: "A", Email: "a@example.com", Phone: "555-0100", City: "X", State: "S", SignupDate: models.NewDate(2023, time.December, 1)},
		},
		Products: []models.Product{
			{ProductID: 1, ProductName: "P", Category: "C", Price: 10, StockQty: 5},
		},
		Orders: []models.Order{
			{OrderID: 1, CustomerID: 1, OrderDate: models.NewDate(2024, time.January, 1), PaymentMethod: "Card", TotalAmount: 20},
		},
		OrderItems: []models.OrderItem{
			{OrderItemID: 1, OrderID: 1, ProductID: 1, Quantity: 2, ItemPrice: 10, LineTotal: 20},
		},
		Shipping: []models.Shipping{
			{ShippingID: 1, OrderID: 1, ShippingDate: models.NewDate(2024, time.January, 1), DeliveryDate: models.NewDate(2024, time.January, 2), ShippingStatus: models.StatusDelivered, Courier: "X"},
		},
	}
}

// StoreDataset is a small shop: three customers, four products, five orders.
// Order 5 has no shipping record and must never appear in a report.
func StoreDataset() Dataset {
	d := func(day int) models.Date { return models.NewDate(2024, time.March, day) }
	return Dataset{
		Customers: []models.Customer{
			{CustomerID: 1, Name: "Asha Rao", Email: "asha@example.com", Phone: "555-0101", City: "Mumbai", State: "MH", SignupDate: d(1)},
			{CustomerID: 2, Name: "Vikram Shah", Email: "vikram@example.com", Phone: "555-0102", City: "Pune", State: "MH", SignupDate: d(1)},
			{CustomerID: 3, Name: "Meera Iyer", Email: "meera@example.com", Phone: "555-0103", City: "Chennai", State: "TN", SignupDate: d(2)},
		},
		Products: []models.Product{
			{ProductID: 1, ProductName: "Laptop", Category: "Electronics", Price: 50000, StockQty: 10},
			{ProductID: 2, ProductName: "Headphones", Category: "Electronics", Price: 2000, StockQty: 50},
			{ProductID: 3, ProductName: "Novel", Category: "Books", Price: 500, StockQty: 100},
			{ProductID: 4, ProductName: "Kettle", Category: "Home", Price: 1500, StockQty: 20},
		},
		Orders: []models.Order{
			{OrderID: 1, CustomerID: 1, OrderDate: d(5), PaymentMethod: "Credit Card", TotalAmount: 52000},
			{OrderID: 2, CustomerID: 2, OrderDate: d(6), PaymentMethod: "UPI", TotalAmount: 1000},
			{OrderID: 3, CustomerID: 1, OrderDate: d(7), PaymentMethod: "UPI", TotalAmount: 1500},
			{OrderID: 4, CustomerID: 3, OrderDate: d(7), PaymentMethod: "Cash on Delivery", TotalAmount: 2500},
			{OrderID: 5, CustomerID: 2, OrderDate: d(9), PaymentMethod: "UPI", TotalAmount: 2000},
		},
		OrderItems: []models.OrderItem{
			{OrderItemID: 1, OrderID: 1, ProductID: 1, Quantity: 1, ItemPrice: 50000, LineTotal: 50000},
			{OrderItemID: 2, OrderID: 1, ProductID: 2, Quantity: 1, ItemPrice: 2000, LineTotal: 2000},
			{OrderItemID: 3, OrderID: 2, ProductID: 3, Quantity: 2, ItemPrice: 500, LineTotal: 1000},
			{OrderItemID: 4, OrderID: 3, ProductID: 4, Quantity: 1, ItemPrice: 1500, LineTotal: 1500},
			{OrderItemID: 5, OrderID: 4, ProductID: 3, Quantity: 1, ItemPrice: 500, LineTotal: 500},
			{OrderItemID: 6, OrderID: 4, ProductID: 2, Quantity: 1, ItemPrice: 2000, LineTotal: 2000},
			{OrderItemID: 7, OrderID: 5, ProductID: 2, Quantity: 1, ItemPrice: 2000, LineTotal: 2000},
		},
		Shipping: []models.Shipping{
			{ShippingID: 1, OrderID: 1, ShippingDate: d(6), DeliveryDate: d(8), ShippingStatus: models.StatusDelivered, Courier: "BlueDart"},
			{ShippingID: 2, OrderID: 2, ShippingDate: d(7), DeliveryDate: d(10), ShippingStatus: models.StatusInTransit, Courier: "Delhivery"},
			{ShippingID: 3, OrderID: 3, ShippingDate: d(8), DeliveryDate: d(9), ShippingStatus: models.StatusDelivered, Courier: "BlueDart"},
			{ShippingID: 4, OrderID: 4, ShippingDate: d(8), DeliveryDate: d(11), ShippingStatus: models.StatusReturned, Courier: "Delhivery"},
		},
	}
}

// Seed inserts a dataset in foreign-key-safe order
func Seed(t *testing.T, db *gorm.DB, data Dataset) {
	t.Helper()

	insert := func(name string, rows interface{}) {
		if err := db.Omit(clause.Associations).Create(rows).Error; err != nil {
			t.Fatalf("Failed to seed %s: %v", name, err)
		}
	}
	if len(data.Customers) > 0 {
		insert("customers", &data.Customers)
	}
	if len(data.Products) > 0 {
		insert("products", &data.Products)
	}
	if len(data.Orders) > 0 {
		insert("orders", &data.Orders)
	}
	if len(data.OrderItems) > 0 {
		insert("order_items", &data.OrderItems)
	}
	if len(data.Shipping) > 0 {
		insert("shipping", &data.Shipping)
	}
}

// CSVFiles renders a dataset as the five loader input files
func CSVFiles(data Dataset) map[string]string {
	files := map[string]string{}

	b := "customer_id,name,email,phone,city,state,signup_date\n"
	for _, c := range data.Customers {
		b += fmt.Sprintf("%d,%s,%s,%s,%s,%s,%s\n", c.CustomerID, c.Name, c.Email, c.Phone, c.City, c.State, c.SignupDate)
	}
	files["customers.csv"] = b

	b = "product_id,product_name,category,price,stock_qty\n"
	for _, p := range data.Products {
		b += fmt.Sprintf("%d,%s,%s,%g,%d\n", p.ProductID, p.ProductName, p.Category, p.Price, p.StockQty)
	}
	files["products.csv"] = b

	b = "order_id,customer_id,order_date,payment_method,total_amount\n"
	for _, o := range data.Orders {
		b += fmt.Sprintf("%d,%d,%s,%s,%g\n", o.OrderID, o.CustomerID, o.OrderDate, o.PaymentMethod, o.TotalAmount)
	}
	files["orders.csv"] = b

	b = "order_item_id,order_id,product_id,quantity,item_price,line_total\n"
	for _, i := range data.OrderItems {
		b += fmt.Sprintf("%d,%d,%d,%d,%g,%g\n", i.OrderItemID, i.OrderID, i.ProductID, i.Quantity, i.ItemPrice, i.LineTotal)
	}
	files["order_items.csv"] = b

	b = "shipping_id,order_id,shipping_date,delivery_date,shipping_status,courier\n"
	for _, s := range data.Shipping {
		b += fmt.Sprintf("%d,%d,%s,%s,%s,%s\n", s.ShippingID, s.OrderID, s.ShippingDate, s.DeliveryDate, s.ShippingStatus, s.Courier)
	}
	files["shipping.csv"] = b

	return files
}

// WriteFiles writes name→content pairs into dir
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}
