package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the tables of every catalog entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&User{},
		&Profile{},
		&Product{},
		&ProductImage{},
	)
}
