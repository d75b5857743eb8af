package models

// Shipping statuses seen in the source data
const (
	StatusDelivered = "Delivered"
	StatusInTransit = "In Transit"
	StatusPending   = "Pending"
	StatusCancelled = "Cancelled"
	StatusReturned  = "Returned"
)

// ShippingStatuses lists the known shipping statuses
var ShippingStatuses = []string{
	StatusDelivered,
	StatusInTransit,
	StatusPending,
	StatusCancelled,
	StatusReturned,
}

// Shipping is the single shipping record of an order
type Shipping struct {
	ShippingID     uint   `gorm:"primaryKey;autoIncrement:false" json:"shipping_id"`
	OrderID        uint   `gorm:"not null;uniqueIndex" json:"order_id"` // one-to-one with orders
	Order          Order  `gorm:"foreignKey:OrderID;references:OrderID" json:"-"`
	ShippingDate   Date   `gorm:"not null" json:"shipping_date"`
	DeliveryDate   Date   `gorm:"not null" json:"delivery_date"`
	ShippingStatus string `gorm:"not null;index" json:"shipping_status"`
	Courier        string `gorm:"not null;index" json:"courier"`
}

// TableName specifies the table name for the Shipping model
func (Shipping) TableName() string {
	return "shipping"
}
