package models

// Customer is a row of the customers table
type Customer struct {
	CustomerID uint   `gorm:"primaryKey;autoIncrement:false" json:"customer_id"`
	Name       string `gorm:"not null" json:"name"`
	Email      string `gorm:"not null" json:"email"`
	Phone      string `gorm:"not null" json:"phone"`
	City       string `gorm:"not null;index" json:"city"`
	State      string `gorm:"not null" json:"state"`
	SignupDate Date   `gorm:"not null" json:"signup_date"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
