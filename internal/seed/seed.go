// Package seed resets a catalog database and fills it with reference data:
// categories, an administrator account, sample products and their images.
//
// Stages run strictly one after another. Products need the identifiers
// generated for their categories and images need those of their products,
// so parents are always created one row at a time before their children.
package seed

import (
	"context"
	"fmt"

	"github.com/KotVCompe/Desert-APP/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	StageValidate      = "validate"
	StageReset         = "reset"
	StageCategories    = "categories"
	StageAdmin         = "admin"
	StageProducts      = "products"
	StageProductImages = "product_images"
)

type CategoryStore interface {
	DeleteAll(ctx context.Context) (int64, error)
	Create(ctx context.Context, category *models.Category) error
}

type ProductStore interface {
	DeleteAll(ctx context.Context) (int64, error)
	DeleteAllImages(ctx context.Context) (int64, error)
	Create(ctx context.Context, product *models.Product) error
	CreateImages(ctx context.Context, images []models.ProductImage, skipDuplicates bool) (int64, error)
}

type UserStore interface {
	DeleteAll(ctx context.Context) (int64, error)
	UpsertByEmail(ctx context.Context, user *models.User) (bool, error)
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// StageError reports which stage of a run failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("seed %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Refs maps fixture keys to the identifiers generated for them.
type Refs map[string]uint

// Summary describes what a completed run left in the store.
type Summary struct {
	RunID         string
	Categories    []models.Category
	Admin         *models.User
	AdminCreated  bool
	Products      []models.Product
	ProductImages int64
}

type Seeder struct {
	categories CategoryStore
	products   ProductStore
	users      UserStore
	hasher     PasswordHasher
	logger     *zap.Logger
}

func NewSeeder(categories CategoryStore, products ProductStore, users UserStore, hasher PasswordHasher, logger *zap.Logger) *Seeder {
	return &Seeder{
		categories: categories,
		products:   products,
		users:      users,
		hasher:     hasher,
		logger:     logger,
	}
}

// Reset deletes images, products, categories and users, in that order.
// It stops at the first failure.
func (s *Seeder) Reset(ctx context.Context) error {
	steps := []struct {
		table string
		del   func(context.Context) (int64, error)
	}{
		{"product_images", s.products.DeleteAllImages},
		{"products", s.products.DeleteAll},
		{"categories", s.categories.DeleteAll},
		{"users", s.users.DeleteAll},
	}

	for _, step := range steps {
		n, err := step.del(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete %s: %w", step.table, err)
		}
		s.logger.Debug("deleted rows", zap.String("table", step.table), zap.Int64("count", n))
	}
	return nil
}

// SeedCategories creates one category per record in input order.
func (s *Seeder) SeedCategories(ctx context.Context, records []CategoryRecord) ([]models.Category, Refs, error) {
	created := make([]models.Category, 0, len(records))
	refs := make(Refs, len(records))

	for _, rec := range records {
		if _, ok := refs[rec.Key]; ok {
			return nil, nil, fmt.Errorf("%w: category %q", ErrDuplicateKey, rec.Key)
		}
		category := models.Category{
			Name:        rec.Name,
			Description: rec.Description,
			ImageURL:    rec.ImageURL,
		}
		if err := s.categories.Create(ctx, &category); err != nil {
			return nil, nil, fmt.Errorf("failed to create category %q: %w", rec.Name, err)
		}
		created = append(created, category)
		refs[rec.Key] = category.ID
	}

	return created, refs, nil
}

// SeedAdmin hashes password and creates the administrator unless a user with
// the same email exists. Calling it again with the same input is a no-op.
func (s *Seeder) SeedAdmin(ctx context.Context, admin AdminRecord, password string) (*models.User, bool, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, false, err
	}

	user := &models.User{
		Email:         admin.Email,
		PasswordHash:  hash,
		FirstName:     admin.FirstName,
		PhoneNumber:   admin.PhoneNumber,
		Role:          models.RoleAdmin,
		EmailVerified: admin.EmailVerified,
		Profile: &models.Profile{
			PreferredNotifications: admin.PreferredNotifications,
		},
	}

	created, err := s.users.UpsertByEmail(ctx, user)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert admin %q: %w", admin.Email, err)
	}
	return user, created, nil
}

// SeedProducts creates one product per record in input order. Every category
// reference is resolved before the first insert.
func (s *Seeder) SeedProducts(ctx context.Context, records []ProductRecord, categories Refs) ([]models.Product, Refs, error) {
	categoryIDs := make([]uint, len(records))
	for i, rec := range records {
		id, ok := categories[rec.Category]
		if !ok {
			return nil, nil, fmt.Errorf("%w: product %q points at category %q", ErrUnknownRef, rec.Key, rec.Category)
		}
		categoryIDs[i] = id
	}

	created := make([]models.Product, 0, len(records))
	refs := make(Refs, len(records))

	for i, rec := range records {
		if _, ok := refs[rec.Key]; ok {
			return nil, nil, fmt.Errorf("%w: product %q", ErrDuplicateKey, rec.Key)
		}
		product := models.Product{
			Name:            rec.Name,
			Description:     rec.Description,
			FullDescription: rec.FullDescription,
			Price:           rec.Price,
			CategoryID:      categoryIDs[i],
			WeightGrams:     rec.WeightGrams,
			VolumeML:        rec.VolumeML,
			Calories:        rec.Calories,
			Ingredients:     models.StringList(rec.Ingredients),
			Tags:            models.StringList(rec.Tags),
			SortOrder:       rec.SortOrder,
		}
		if err := s.products.Create(ctx, &product); err != nil {
			return nil, nil, fmt.Errorf("failed to create product %q: %w", rec.Name, err)
		}
		created = append(created, product)
		refs[rec.Key] = product.ID
	}

	return created, refs, nil
}

// SeedProductImages inserts every image in a single batch. Images that are
// already stored for the same product are skipped.
func (s *Seeder) SeedProductImages(ctx context.Context, records []ImageRecord, products Refs) (int64, error) {
	images := make([]models.ProductImage, len(records))
	for i, rec := range records {
		id, ok := products[rec.Product]
		if !ok {
			return 0, fmt.Errorf("%w: image %q points at product %q", ErrUnknownRef, rec.ImageURL, rec.Product)
		}
		images[i] = models.ProductImage{
			ProductID: id,
			ImageURL:  rec.ImageURL,
			AltText:   rec.AltText,
			SortOrder: rec.SortOrder,
		}
	}

	n, err := s.products.CreateImages(ctx, images, true)
	if err != nil {
		return 0, fmt.Errorf("failed to create product images: %w", err)
	}
	return n, nil
}

// Run validates fixtures, wipes the store and loads the dataset. Any failure
// aborts the run and is returned as a *StageError.
func (s *Seeder) Run(ctx context.Context, fixtures *Fixtures, adminPassword string) (*Summary, error) {
	summary := &Summary{RunID: uuid.NewString()}
	log := s.logger.With(zap.String("run_id", summary.RunID))

	if err := fixtures.Validate(); err != nil {
		return nil, s.fail(log, StageValidate, err)
	}

	log.Info("starting database seeding")

	if err := s.Reset(ctx); err != nil {
		return nil, s.fail(log, StageReset, err)
	}
	log.Info("cleared existing data")

	categories, categoryRefs, err := s.SeedCategories(ctx, fixtures.Categories)
	if err != nil {
		return nil, s.fail(log, StageCategories, err)
	}
	summary.Categories = categories
	log.Info("created categories", zap.Int("count", len(categories)))

	admin, adminCreated, err := s.SeedAdmin(ctx, fixtures.Admin, adminPassword)
	if err != nil {
		return nil, s.fail(log, StageAdmin, err)
	}
	summary.Admin = admin
	summary.AdminCreated = adminCreated
	log.Info("created admin user", zap.String("email", admin.Email), zap.Bool("inserted", adminCreated))

	products, productRefs, err := s.SeedProducts(ctx, fixtures.Products, categoryRefs)
	if err != nil {
		return nil, s.fail(log, StageProducts, err)
	}
	summary.Products = products
	log.Info("created products", zap.Int("count", len(products)))

	images, err := s.SeedProductImages(ctx, fixtures.ProductImages, productRefs)
	if err != nil {
		return nil, s.fail(log, StageProductImages, err)
	}
	summary.ProductImages = images
	log.Info("created product images", zap.Int64("count", images))

	log.Info("database seeding completed")
	return summary, nil
}

func (s *Seeder) fail(log *zap.Logger, stage string, err error) error {
	log.Error("seeding failed", zap.String("stage", stage), zap.Error(err))
	return &StageError{Stage: stage, Err: err}
}
