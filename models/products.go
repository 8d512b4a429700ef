package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// Desserts are sold by weight and drinks by volume, so at most one of
// WeightGrams and VolumeML is expected to be set.
type Product struct {
	ID              uint            `gorm:"primaryKey"`
	Name            string          `gorm:"not null"`
	Description     string          `gorm:"type:text"`
	FullDescription string          `gorm:"type:text"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID      uint            `gorm:"not null;index"`
	Category        Category        `gorm:"foreignKey:CategoryID"`
	WeightGrams     *int            `gorm:"column:weight_grams"`
	VolumeML        *int            `gorm:"column:volume_ml"`
	Calories        int             `gorm:"not null;default:0"`
	Ingredients     StringList      `gorm:"column:ingredients"`
	Tags            StringList      `gorm:"column:tags"`
	SortOrder       int             `gorm:"not null;default:0"`
	Images          []ProductImage  `gorm:"foreignKey:ProductID"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p *Product) TableName() string {
	return "products"
}

// ProductImage is a picture attached to a product.
// The same URL can only be attached to a product once.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"not null;uniqueIndex:idx_product_images_product_url"`
	ImageURL  string `gorm:"not null;uniqueIndex:idx_product_images_product_url"`
	AltText   string
	SortOrder int `gorm:"not null;default:0"`
	CreatedAt time.Time
}

func (i *ProductImage) TableName() string {
	return "product_images"
}
