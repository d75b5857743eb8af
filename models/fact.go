package models

// FactRow is one row of the denormalized reporting view: an order line item
// widened with its customer, product and shipping attributes.
type FactRow struct {
	CustomerName   string  `gorm:"column:customer_name" json:"customer_name"`
	City           string  `gorm:"column:city" json:"city"`
	State          string  `gorm:"column:state" json:"state"`
	OrderID        uint    `gorm:"column:order_id" json:"order_id"`
	OrderDate      Date    `gorm:"column:order_date" json:"order_date"`
	PaymentMethod  string  `gorm:"column:payment_method" json:"payment_method"`
	ProductName    string  `gorm:"column:product_name" json:"product_name"`
	Category       string  `gorm:"column:category" json:"category"`
	Quantity       int     `gorm:"column:quantity" json:"quantity"`
	ItemPrice      float64 `gorm:"column:item_price" json:"item_price"`
	TotalAmount    float64 `gorm:"column:total_amount" json:"total_amount"`
	ShippingStatus string  `gorm:"column:shipping_status" json:"shipping_status"`
	DeliveryDate   Date    `gorm:"column:delivery_date" json:"delivery_date"`
	Courier        string  `gorm:"column:courier" json:"courier"`
}

// FactColumns lists the fact table columns in output order
var FactColumns = []string{
	"customer_name",
	"city",
	"state",
	"order_id",
	"order_date",
	"payment_method",
	"product_name",
	"category",
	"quantity",
	"item_price",
	"total_amount",
	"shipping_status",
	"delivery_date",
	"courier",
}
