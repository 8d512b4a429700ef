package cli

import (
	"encoding/json"
	"io"

	"github.com/KotVCompe/Desert-APP/models"
	"github.com/spf13/cobra"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Category struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type Product struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Category    Category `json:"category"`
	WeightGrams *int     `json:"weight_grams,omitempty"`
	VolumeML    *int     `json:"volume_ml,omitempty"`
	Calories    int      `json:"calories"`
	Tags        []string `json:"tags"`
}

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	var (
		offset       int
		limit        int
		categoryName string
		priceLT      float64
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print seeded products as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closeFn, err := open(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			filters := models.ProductFilters{CategoryName: categoryName}
			if cmd.Flags().Changed("price-lt") {
				filters.PriceLessThan = &priceLT
			}

			repo := models.NewProductsRepository(a.db)
			offset, limit = clampPage(offset, limit)
			res, total, err := repo.GetFilteredProducts(commandContext(cmd), offset, limit, filters)
			if err != nil {
				return err
			}
			return writeCatalog(cmd.OutOrStdout(), res, total)
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "number of products to skip")
	cmd.Flags().IntVar(&limit, "limit", 10, "page size (1-100)")
	cmd.Flags().StringVar(&categoryName, "category", "", "only products of this category")
	cmd.Flags().Float64Var(&priceLT, "price-lt", 0, "only products cheaper than this")
	return cmd
}

func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 1
	} else if limit > 100 {
		limit = 100
	}
	return offset, limit
}

func writeCatalog(w io.Writer, res []models.Product, total int64) error {
	products := make([]Product, len(res))
	for i, p := range res {
		tags := []string(p.Tags)
		if tags == nil {
			tags = []string{}
		}
		products[i] = Product{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price.StringFixed(2),
			Category: Category{
				Name: p.Category.Name,
			},
			WeightGrams: p.WeightGrams,
			VolumeML:    p.VolumeML,
			Calories:    p.Calories,
			Tags:        tags,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(Response{
		Total:    int(total),
		Products: products,
	})
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print seeded categories as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closeFn, err := open(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			categories, err := models.NewCategoriesRepository(a.db).GetAllCategories(commandContext(cmd))
			if err != nil {
				return err
			}

			response := make([]Category, len(categories))
			for i, c := range categories {
				response[i] = Category{
					Name:        c.Name,
					Description: c.Description,
					ImageURL:    c.ImageURL,
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(response)
		},
	}
}
