package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"streetbazaar/internal/database"
	"streetbazaar/internal/models"
	"streetbazaar/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stores returns every Store implementation, each backed by fresh state.
func stores(t *testing.T) map[string]*repositories.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := database.Open(database.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	return map[string]*repositories.Store{
		"gorm":   repositories.NewGORMStore(db),
		"memory": repositories.NewMemoryStore(),
	}
}

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestUserRepository(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			count, err := store.Users.Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, count)

			user := &models.User{
				ID:           uuid.New().String(),
				Email:        "delhi.agro@gmail.com",
				PasswordHash: "hash",
				Name:         "Amit Gupta",
				Role:         models.RoleSupplier,
				CreatedAt:    base,
			}
			require.NoError(t, store.Users.Create(ctx, user))

			got, err := store.Users.GetByEmail(ctx, "delhi.agro@gmail.com")
			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
			assert.Equal(t, "hash", got.PasswordHash)
			assert.Equal(t, models.RoleSupplier, got.Role)

			got, err = store.Users.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, "delhi.agro@gmail.com", got.Email)

			_, err = store.Users.GetByEmail(ctx, "Delhi.Agro@gmail.com")
			assert.ErrorIs(t, err, repositories.ErrNotFound, "email lookup is case-sensitive")

			_, err = store.Users.GetByID(ctx, "missing")
			assert.ErrorIs(t, err, repositories.ErrNotFound)

			dup := &models.User{ID: uuid.New().String(), Email: "delhi.agro@gmail.com", PasswordHash: "x", Role: models.RoleVendor}
			assert.ErrorIs(t, store.Users.Create(ctx, dup), repositories.ErrDuplicate)

			count, err = store.Users.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})
	}
}

func TestProductRepository(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			products := []models.Product{
				{Name: "Premium Basmati Rice", Category: "grains", Description: "Long grain rice", IsAvailable: true},
				{Name: "Pure Ghee", Category: "dairy", Description: "100% pure cow ghee", IsAvailable: true},
				{Name: "Wheat Flour", Category: "grains", Description: "1000 grams pack", IsAvailable: true},
				{Name: "Saffron", Category: "spices", Description: "Out of season", IsAvailable: false},
				{Name: "under_score", Category: "misc", Description: "", IsAvailable: true},
			}
			for i := range products {
				products[i].ID = uuid.New().String()
				products[i].SupplierID = "s1"
				products[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
				require.NoError(t, store.Products.Create(ctx, &products[i]))
			}

			names := func(list []models.Product) []string {
				out := make([]string, 0, len(list))
				for _, p := range list {
					out = append(out, p.Name)
				}
				return out
			}

			all, err := store.Products.List(ctx, repositories.ProductQuery{OnlyAvailable: true})
			require.NoError(t, err)
			assert.Equal(t, []string{"under_score", "Wheat Flour", "Pure Ghee", "Premium Basmati Rice"}, names(all))

			grains, err := store.Products.List(ctx, repositories.ProductQuery{Category: "grains", OnlyAvailable: true})
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"Premium Basmati Rice", "Wheat Flour"}, names(grains))

			found, err := store.Products.List(ctx, repositories.ProductQuery{Search: "GHEE", OnlyAvailable: true})
			require.NoError(t, err)
			assert.Equal(t, []string{"Pure Ghee"}, names(found))

			found, err = store.Products.List(ctx, repositories.ProductQuery{Search: "long grain", OnlyAvailable: true})
			require.NoError(t, err)
			assert.Equal(t, []string{"Premium Basmati Rice"}, names(found), "search covers the description")

			found, err = store.Products.List(ctx, repositories.ProductQuery{Search: "0%", OnlyAvailable: true})
			require.NoError(t, err)
			assert.Equal(t, []string{"Pure Ghee"}, names(found), "wildcards match literally")

			found, err = store.Products.List(ctx, repositories.ProductQuery{Search: "h_a", OnlyAvailable: true})
			require.NoError(t, err)
			assert.Empty(t, found)

			found, err = store.Products.List(ctx, repositories.ProductQuery{Search: "r_s", OnlyAvailable: true})
			require.NoError(t, err)
			assert.Equal(t, []string{"under_score"}, names(found))

			found, err = store.Products.List(ctx, repositories.ProductQuery{Search: "saffron", OnlyAvailable: true})
			require.NoError(t, err)
			assert.Empty(t, found, "unavailable products are hidden")

			limited, err := store.Products.List(ctx, repositories.ProductQuery{OnlyAvailable: true, Limit: 2})
			require.NoError(t, err)
			assert.Len(t, limited, 2)

			categories, err := store.Products.Categories(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"dairy", "grains", "misc", "spices"}, categories)

			got, err := store.Products.GetByID(ctx, products[3].ID)
			require.NoError(t, err)
			assert.Equal(t, "Saffron", got.Name)
			assert.False(t, got.IsAvailable)

			_, err = store.Products.GetByID(ctx, "missing")
			assert.ErrorIs(t, err, repositories.ErrNotFound)
		})
	}
}

func TestOrderRepository(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			newOrder := func(vendorID, supplierID string, at time.Time) *models.Order {
				return &models.Order{
					ID:          uuid.New().String(),
					OrderNumber: "ORD" + at.Format("20060102150405"),
					VendorID:    vendorID,
					SupplierID:  supplierID,
					Items: []models.CartItem{
						{ProductID: "p1", ProductName: "Rice", Quantity: 2, UnitPrice: 10, TotalPrice: 20, SupplierID: supplierID},
					},
					TotalAmount: 20,
					Status:      models.OrderStatusPending,
					CreatedAt:   at,
				}
			}

			first := newOrder("v1", "s1", base)
			second := newOrder("v1", "s2", base.Add(time.Hour))
			third := newOrder("v2", "s1", base.Add(2*time.Hour))
			for _, o := range []*models.Order{first, second, third} {
				require.NoError(t, store.Orders.Create(ctx, o))
			}

			purchases, err := store.Orders.List(ctx, repositories.OrderQuery{VendorID: "v1"})
			require.NoError(t, err)
			require.Len(t, purchases, 2)
			assert.Equal(t, second.ID, purchases[0].ID, "newest first")
			assert.Equal(t, first.ID, purchases[1].ID)
			require.Len(t, purchases[1].Items, 1)
			assert.Equal(t, "Rice", purchases[1].Items[0].ProductName)

			sales, err := store.Orders.List(ctx, repositories.OrderQuery{SupplierID: "s1"})
			require.NoError(t, err)
			require.Len(t, sales, 2)
			assert.Equal(t, third.ID, sales[0].ID)

			require.NoError(t, store.Orders.UpdateStatus(ctx, first.ID, "s1", "confirmed"))
			err = store.Orders.UpdateStatus(ctx, second.ID, "s1", "confirmed")
			assert.ErrorIs(t, err, repositories.ErrNotFound, "another supplier's order")
			err = store.Orders.UpdateStatus(ctx, "missing", "s1", "confirmed")
			assert.ErrorIs(t, err, repositories.ErrNotFound)

			purchases, err = store.Orders.List(ctx, repositories.OrderQuery{VendorID: "v1"})
			require.NoError(t, err)
			assert.Equal(t, models.OrderStatusPending, purchases[0].Status)
			assert.Equal(t, "confirmed", purchases[1].Status)
		})
	}
}

func TestProductRepository_SearchFoldsUnicode(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			products := []models.Product{
				{Name: "GARAM MASALA ÉPICE", Category: "spices", Description: "Mélange de Delhi", IsAvailable: true},
				{Name: "Kashmiri Chilli", Category: "spices", Description: "ÇA PIQUE", IsAvailable: true},
			}
			for i := range products {
				products[i].ID = uuid.New().String()
				products[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
				require.NoError(t, store.Products.Create(ctx, &products[i]))
			}

			found, err := store.Products.List(ctx, repositories.ProductQuery{Search: "épice", OnlyAvailable: true})
			require.NoError(t, err)
			require.Len(t, found, 1)
			assert.Equal(t, "GARAM MASALA ÉPICE", found[0].Name)

			found, err = store.Products.List(ctx, repositories.ProductQuery{Search: "ça pique", OnlyAvailable: true})
			require.NoError(t, err)
			require.Len(t, found, 1)
			assert.Equal(t, "Kashmiri Chilli", found[0].Name)

			found, err = store.Products.List(ctx, repositories.ProductQuery{Search: "MÉLANGE", OnlyAvailable: true})
			require.NoError(t, err)
			assert.Len(t, found, 1)
		})
	}
}
