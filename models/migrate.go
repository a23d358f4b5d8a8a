package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Restaurant{},
		&Product{},
		&Order{},
		&OrderItem{},
		&Payment{},
		&DeliveryTracking{},
		&Rating{},
	)
}
