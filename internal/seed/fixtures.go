package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/fixtures.yaml
var defaultFixtures []byte

var (
	// ErrDuplicateKey is returned when two fixture records share a key.
	ErrDuplicateKey = errors.New("duplicate fixture key")
	// ErrUnknownRef is returned when a record points at a key that was never seeded.
	ErrUnknownRef = errors.New("unknown fixture reference")
	// ErrWeightAndVolume is returned for a product that sets both weight and volume.
	ErrWeightAndVolume = errors.New("product sets both weight_grams and volume_ml")
	// ErrInvalidFixture covers missing required fields and out of range values.
	ErrInvalidFixture = errors.New("invalid fixture")
)

// Fixtures is the full reference dataset loaded into an empty store.
type Fixtures struct {
	Categories    []CategoryRecord `yaml:"categories"`
	Admin         AdminRecord      `yaml:"admin"`
	Products      []ProductRecord  `yaml:"products"`
	ProductImages []ImageRecord    `yaml:"product_images"`
}

type CategoryRecord struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"image_url"`
}

type AdminRecord struct {
	Email                  string `yaml:"email"`
	FirstName              string `yaml:"first_name"`
	PhoneNumber            string `yaml:"phone_number"`
	EmailVerified          bool   `yaml:"email_verified"`
	PreferredNotifications bool   `yaml:"preferred_notifications"`
}

// ProductRecord refers to its category by the category's fixture key.
type ProductRecord struct {
	Key             string          `yaml:"key"`
	Category        string          `yaml:"category"`
	Name            string          `yaml:"name"`
	Description     string          `yaml:"description"`
	FullDescription string          `yaml:"full_description"`
	Price           decimal.Decimal `yaml:"price"`
	WeightGrams     *int            `yaml:"weight_grams"`
	VolumeML        *int            `yaml:"volume_ml"`
	Calories        int             `yaml:"calories"`
	Ingredients     []string        `yaml:"ingredients"`
	Tags            []string        `yaml:"tags"`
	SortOrder       int             `yaml:"sort_order"`
}

// ImageRecord refers to its product by the product's fixture key.
type ImageRecord struct {
	Product   string `yaml:"product"`
	ImageURL  string `yaml:"image_url"`
	AltText   string `yaml:"alt_text"`
	SortOrder int    `yaml:"sort_order"`
}

// DefaultFixtures returns the built-in dessert shop dataset.
func DefaultFixtures() (*Fixtures, error) {
	return ParseFixtures(defaultFixtures)
}

// LoadFixtures reads fixtures from path, or the built-in dataset when path is empty.
func LoadFixtures(path string) (*Fixtures, error) {
	if path == "" {
		return DefaultFixtures()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &f, nil
}

// Validate checks the dataset before anything touches the store: keys are
// unique, every reference resolves within the dataset and required fields are set.
func (f *Fixtures) Validate() error {
	categoryKeys := make(map[string]bool, len(f.Categories))
	names := make(map[string]bool, len(f.Categories))
	for i, c := range f.Categories {
		if c.Key == "" || c.Name == "" {
			return fmt.Errorf("%w: category #%d needs a key and a name", ErrInvalidFixture, i)
		}
		if categoryKeys[c.Key] {
			return fmt.Errorf("%w: category %q", ErrDuplicateKey, c.Key)
		}
		if names[c.Name] {
			return fmt.Errorf("%w: category name %q is used twice", ErrInvalidFixture, c.Name)
		}
		categoryKeys[c.Key] = true
		names[c.Name] = true
	}

	if f.Admin.Email == "" {
		return fmt.Errorf("%w: admin email is required", ErrInvalidFixture)
	}

	productKeys := make(map[string]bool, len(f.Products))
	for i, p := range f.Products {
		if err := p.validate(); err != nil {
			return fmt.Errorf("product #%d: %w", i, err)
		}
		if productKeys[p.Key] {
			return fmt.Errorf("%w: product %q", ErrDuplicateKey, p.Key)
		}
		if !categoryKeys[p.Category] {
			return fmt.Errorf("%w: product %q points at category %q", ErrUnknownRef, p.Key, p.Category)
		}
		productKeys[p.Key] = true
	}

	for i, img := range f.ProductImages {
		if img.ImageURL == "" {
			return fmt.Errorf("%w: image #%d needs an image_url", ErrInvalidFixture, i)
		}
		if !productKeys[img.Product] {
			return fmt.Errorf("%w: image #%d points at product %q", ErrUnknownRef, i, img.Product)
		}
	}

	return nil
}

func (p ProductRecord) validate() error {
	if p.Key == "" || p.Name == "" {
		return fmt.Errorf("%w: key and name are required", ErrInvalidFixture)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price %s is negative", ErrInvalidFixture, p.Price)
	}
	if p.WeightGrams != nil && p.VolumeML != nil {
		return fmt.Errorf("%w: %q", ErrWeightAndVolume, p.Key)
	}
	return nil
}
