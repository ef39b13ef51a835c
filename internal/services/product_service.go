package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"streetbazaar/internal/models"
	"streetbazaar/internal/repositories"

	"github.com/google/uuid"
)

// MaxListResults caps a catalog listing.
const MaxListResults = 1000

// ProductFilter narrows a catalog listing. Empty fields are ignored.
type ProductFilter struct {
	Category string
	Search   string
}

// ProductInput is the supplier-provided part of a new listing.
type ProductInput struct {
	Name        string
	Category    string
	Description string
	Price       float64
	Unit        string
	Stock       int
	MinOrderQty int
	MaxOrderQty int
}

// ProductService is the catalog.
type ProductService struct {
	repo   repositories.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: resolveLogger(logger),
	}
}

// GetProducts lists available products. Category matches exactly; Search matches
// name or description, case-insensitively.
func (s *ProductService) GetProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	return s.repo.List(ctx, repositories.ProductQuery{
		Category:      filter.Category,
		Search:        filter.Search,
		OnlyAvailable: true,
		Limit:         MaxListResults,
	})
}

// GetCategories lists every category in the catalog, available or not.
func (s *ProductService) GetCategories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

// CreateProduct lists a new product for the calling supplier. Ownership comes
// from the caller, never from the input.
func (s *ProductService) CreateProduct(ctx context.Context, caller models.Caller, in ProductInput) (*models.Product, error) {
	if err := Authorize(OpCreateProduct, caller); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Category:     in.Category,
		Description:  in.Description,
		Price:        in.Price,
		Unit:         in.Unit,
		Stock:        in.Stock,
		MinOrderQty:  in.MinOrderQty,
		MaxOrderQty:  in.MaxOrderQty,
		SupplierID:   caller.ID,
		SupplierName: caller.BusinessName,
		IsAvailable:  true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created", "product_id", product.ID, "supplier_id", caller.ID)
	return product, nil
}
