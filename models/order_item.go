package models

// OrderItem is a line of an order
type OrderItem struct {
	OrderItemID uint    `gorm:"primaryKey;autoIncrement:false" json:"order_item_id"`
	OrderID     uint    `gorm:"not null;index" json:"order_id"` // foreign key to orders table
	Order       Order   `gorm:"foreignKey:OrderID;references:OrderID" json:"-"`
	ProductID   uint    `gorm:"not null;index" json:"product_id"` // foreign key to products table
	Product     Product `gorm:"foreignKey:ProductID;references:ProductID" json:"-"`
	Quantity    int     `gorm:"not null;check:quantity >= 0" json:"quantity"`
	ItemPrice   float64 `gorm:"not null;check:item_price >= 0" json:"item_price"`
	LineTotal   float64 `gorm:"not null;check:line_total >= 0" json:"line_total"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
