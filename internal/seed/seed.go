// Package seed loads the demo marketplace into an empty store.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"streetbazaar/internal/models"
	"streetbazaar/internal/repositories"
	"streetbazaar/internal/services"

	"github.com/google/uuid"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "demo123"

type account struct {
	email, name, phone, businessName, city, state string
	role                                          models.Role
}

var accounts = []account{
	{"rajesh.dosa@gmail.com", "Rajesh Kumar", "9876543210", "Rajesh Dosa Corner", "Delhi", "Delhi", models.RoleVendor},
	{"sunita.chaat@gmail.com", "Sunita Sharma", "9876543211", "Sunita's Chaat Bhandaar", "Mumbai", "Maharashtra", models.RoleVendor},
	{"vikram.paratha@gmail.com", "Vikram Singh", "9876543212", "Vikram Paratha Point", "Jaipur", "Rajasthan", models.RoleVendor},
	{"delhi.agro@gmail.com", "Amit Gupta", "9876543213", "Delhi Agro Supplies", "Delhi", "Delhi", models.RoleSupplier},
	{"mumbai.oils@gmail.com", "Priya Patel", "9876543214", "Mumbai Oil Traders", "Mumbai", "Maharashtra", models.RoleSupplier},
	{"punjab.fresh@gmail.com", "Harjeet Singh", "9876543215", "Punjab Fresh Supply", "Chandigarh", "Punjab", models.RoleSupplier},
}

type listing struct {
	name, category, description, unit string
	price                             float64
	stock, minQty, maxQty             int
	supplierEmail                     string
}

var listings = []listing{
	{"Premium Basmati Rice", "grains", "Long grain premium quality rice from Punjab", "kg", 45, 500, 10, 100, "delhi.agro@gmail.com"},
	{"Refined Sunflower Oil", "oils", "Cold-pressed refined cooking oil", "liter", 120, 200, 5, 50, "mumbai.oils@gmail.com"},
	{"Fresh Red Onions", "vegetables", "Farm-fresh red onions from Punjab", "kg", 25, 300, 20, 100, "punjab.fresh@gmail.com"},
	{"Turmeric Powder", "spices", "Pure organic turmeric powder", "kg", 180, 80, 2, 20, "delhi.agro@gmail.com"},
	{"Pure Ghee", "dairy", "Traditional cow milk ghee", "kg", 450, 50, 1, 10, "punjab.fresh@gmail.com"},
	{"Cumin Seeds", "spices", "Whole cumin seeds from Rajasthan", "kg", 320, 100, 5, 25, "delhi.agro@gmail.com"},
	{"Refined Wheat Flour", "grains", "Fine quality wheat flour for rotis", "kg", 35, 400, 25, 100, "mumbai.oils@gmail.com"},
	{"Fresh Tomatoes", "vegetables", "Ripe red tomatoes from local farms", "kg", 30, 150, 10, 50, "punjab.fresh@gmail.com"},
}

// SampleData inserts the demo vendors, suppliers and products. It does nothing
// when the store already holds any user.
func SampleData(ctx context.Context, store *repositories.Store, hasher *services.PasswordHasher, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	count, err := store.Users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		logger.Debug("store already populated, skipping sample data", "users", count)
		return nil
	}

	hash, err := hasher.Hash(DemoPassword)
	if err != nil {
		return err
	}

	suppliers := make(map[string]*models.User)
	for _, a := range accounts {
		user := &models.User{
			ID:           uuid.New().String(),
			Email:        a.email,
			PasswordHash: hash,
			Name:         a.name,
			Phone:        a.phone,
			Role:         a.role,
			BusinessName: a.businessName,
			City:         a.city,
			State:        a.state,
			CreatedAt:    time.Now().UTC(),
		}
		if err := store.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", a.email, err)
		}
		if a.role == models.RoleSupplier {
			suppliers[a.email] = user
		}
	}

	for _, l := range listings {
		supplier := suppliers[l.supplierEmail]
		product := &models.Product{
			ID:           uuid.New().String(),
			Name:         l.name,
			Category:     l.category,
			Description:  l.description,
			Price:        l.price,
			Unit:         l.unit,
			Stock:        l.stock,
			MinOrderQty:  l.minQty,
			MaxOrderQty:  l.maxQty,
			SupplierID:   supplier.ID,
			SupplierName: supplier.BusinessName,
			IsAvailable:  true,
			CreatedAt:    time.Now().UTC(),
		}
		if err := store.Products.Create(ctx, product); err != nil {
			return fmt.Errorf("seed product %s: %w", l.name, err)
		}
	}

	logger.Info("sample data seeded", "users", len(accounts), "products", len(listings))
	return nil
}
