package handlers

import (
	"log/slog"

	"streetbazaar/internal/middleware"
	"streetbazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultMinOrderQty = 1
	defaultMaxOrderQty = 1000
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validate *validator.Validate, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validate,
		logger:   logger,
	}
}

// RegisterRoutes registers the product routes. Browsing is public; creating needs requireAuth.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/categories", h.HandleGetCategories)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", requireAuth, h.HandleCreateProduct)
}

// HandleGetProducts lists available products filtered by ?category= and ?search=.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetProducts(c.UserContext(), services.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return respondError(c, h.logger, err, errorText{})
	}
	return c.JSON(products)
}

// HandleGetCategories lists the distinct product categories.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, errorText{})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, errorText{notFound: "Product not found"})
	}
	return c.JSON(product)
}

// CreateProductRequest represents the request body for a new listing.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gt=0"`
	Unit        string  `json:"unit" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
	MinOrderQty int     `json:"minOrderQty" validate:"gte=0"`
	MaxOrderQty int     `json:"maxOrderQty" validate:"gte=0"`
}

// HandleCreateProduct lists a new product for the calling supplier.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}
	if req.MinOrderQty == 0 {
		req.MinOrderQty = defaultMinOrderQty
	}
	if req.MaxOrderQty == 0 {
		req.MaxOrderQty = defaultMaxOrderQty
	}

	user := middleware.CurrentUser(c)
	product, err := h.service.CreateProduct(c.UserContext(), user.Caller(), services.ProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Unit:        req.Unit,
		Stock:       req.Stock,
		MinOrderQty: req.MinOrderQty,
		MaxOrderQty: req.MaxOrderQty,
	})
	if err != nil {
		return respondError(c, h.logger, err, errorText{forbidden: "Only suppliers can create products"})
	}
	return c.JSON(product)
}
