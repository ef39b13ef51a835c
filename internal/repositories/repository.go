package repositories

import (
	"context"
	"errors"
	"strings"

	"streetbazaar/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique key.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// ProductQuery narrows a product listing. Zero values mean "no filter".
type ProductQuery struct {
	Category      string
	Search        string
	OnlyAvailable bool
	Limit         int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, query ProductQuery) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// OrderQuery selects orders by party. Exactly one field is expected to be set.
type OrderQuery struct {
	VendorID   string
	SupplierID string
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context, query OrderQuery) ([]models.Order, error)
	// UpdateStatus sets the status of the order matching both id and supplierID.
	// It returns ErrNotFound when nothing matched.
	UpdateStatus(ctx context.Context, id, supplierID, status string) error
}

// Store groups the repositories backing one data source.
type Store struct {
	Users    UserRepository
	Products ProductRepository
	Orders   OrderRepository
}

// NewGORMStore builds a Store on top of an open GORM connection.
func NewGORMStore(db *gorm.DB) *Store {
	return &Store{
		Users:    NewGORMUserRepository(db),
		Products: NewGORMProductRepository(db),
		Orders:   NewGORMOrderRepository(db),
	}
}

// NewMemoryStore builds a process-local Store.
func NewMemoryStore() *Store {
	return &Store{
		Users:    NewMemoryUserRepository(),
		Products: NewMemoryProductRepository(),
		Orders:   NewMemoryOrderRepository(),
	}
}

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// sqlite without error translation
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere, lowercased.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
