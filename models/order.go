package models

// Order is a row of the orders table
type Order struct {
	OrderID       uint     `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	CustomerID    uint     `gorm:"not null;index" json:"customer_id"` // foreign key to customers table
	Customer      Customer `gorm:"foreignKey:CustomerID;references:CustomerID" json:"-"`
	OrderDate     Date     `gorm:"not null;index" json:"order_date"`
	PaymentMethod string   `gorm:"not null" json:"payment_method"`
	TotalAmount   float64  `gorm:"not null;check:total_amount >= 0" json:"total_amount"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
