package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Tables returns one value of every base model in foreign-key-safe order:
// every table appears after the tables it references.
func Tables() []interface{} {
	return []interface{}{
		&Customer{},
		&Product{},
		&Order{},
		&OrderItem{},
		&Shipping{},
	}
}

// TableNames returns the base table names in foreign-key-safe order
func TableNames() []string {
	return []string{
		Customer{}.TableName(),
		Product{}.TableName(),
		Order{}.TableName(),
		OrderItem{}.TableName(),
		Shipping{}.TableName(),
	}
}

// Migrate creates any missing base tables, columns, indexes and constraints
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// DropAll drops the base tables, dependants first
func DropAll(db *gorm.DB) error {
	tables := Tables()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}
