//go:build container
// +build container

package seed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/KotVCompe/Desert-APP/internal/database"
	"github.com/KotVCompe/Desert-APP/internal/password"
	"github.com/KotVCompe/Desert-APP/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func startPostgres(t *testing.T, ctx context.Context) string {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "shop",
			"POSTGRES_PASSWORD": "shop",
			"POSTGRES_DB":       "dessertshop",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://shop:shop@%s:%s/dessertshop?sslmode=disable", host, port.Port())
}

func TestRunOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping container-based test in short mode")
	}
	ctx := context.Background()
	url := startPostgres(t, ctx)

	db, err := database.Open(database.Config{URL: url}, zap.NewNop())
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, models.AutoMigrate(db))

	categories := models.NewCategoriesRepository(db)
	products := models.NewProductsRepository(db)
	users := models.NewUsersRepository(db)
	seeder := NewSeeder(categories, products, users, password.NewBcryptHasher(bcrypt.MinCost), zap.NewNop())

	for run := 0; run < 2; run++ {
		_, err := seeder.Run(ctx, mustDefaultFixtures(t), "admin123")
		require.NoError(t, err, "run %d", run)
	}

	n, err := categories.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	n, err = products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	n, err = products.CountImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	n, err = users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	coffee, total, err := products.GetFilteredProducts(ctx, 0, 10, models.ProductFilters{CategoryName: "Кофе"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, coffee, 2)
	assert.Equal(t, "Латте", coffee[0].Name)
	assert.Equal(t, models.StringList{"эспрессо", "молоко"}, coffee[0].Ingredients)

	// The product_images unique index turns a repeated batch into a no-op.
	_, err = products.CreateImages(ctx, []models.ProductImage{
		{ProductID: coffee[0].ID, ImageURL: "https://avatars.mds.yandex.net/i?id=3df7e572e976e0db22272cba0f9799f5_l-4298511-images-thumbs&n=13"},
	}, true)
	require.NoError(t, err)
	n, err = products.CountImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
