package models

// Product is a row of the products table
type Product struct {
	ProductID   uint    `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	ProductName string  `gorm:"not null" json:"product_name"`
	Category    string  `gorm:"not null;index" json:"category"`
	Price       float64 `gorm:"not null;check:price >= 0" json:"price"`
	StockQty    int     `gorm:"not null;check:stock_qty >= 0" json:"stock_qty"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
