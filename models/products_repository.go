package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type ProductFilters struct {
	CategoryName  string
	PriceLessThan *float64
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// DeleteAll removes every product. Images must be deleted first.
func (r *ProductsRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&Product{})
	return res.RowsAffected, res.Error
}

func (r *ProductsRepository) DeleteAllImages(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&ProductImage{})
	return res.RowsAffected, res.Error
}

func (r *ProductsRepository) Create(ctx context.Context, product *Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

// CreateImages inserts all images in one statement. With skipDuplicates set,
// rows that hit a unique constraint are left out instead of failing the batch.
// The returned count is the number of rows actually inserted.
func (r *ProductsRepository) CreateImages(ctx context.Context, images []ProductImage, skipDuplicates bool) (int64, error) {
	if len(images) == 0 {
		return 0, nil
	}
	query := r.db.WithContext(ctx)
	if skipDuplicates {
		query = query.Clauses(clause.OnConflict{DoNothing: true})
	}
	res := query.Create(&images)
	return res.RowsAffected, res.Error
}

func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.WithContext(ctx).Model(&Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id")

	// Filter
	if filters.CategoryName != "" {
		query = query.Where("categories.name = ?", filters.CategoryName)
	}
	if filters.PriceLessThan != nil {
		query = query.Where("products.price < ?", *filters.PriceLessThan)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if err := query.
		Preload("Category").
		Order("products.category_id ASC").
		Order("products.sort_order ASC").
		Order("products.id ASC").
		Offset(offset).Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_images.sort_order ASC")
		}).
		Preload("Category").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

func (r *ProductsRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Product{}).Count(&total).Error
	return total, err
}

func (r *ProductsRepository) CountImages(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&ProductImage{}).Count(&total).Error
	return total, err
}
