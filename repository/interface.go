package repository

import (
	"context"
	"errors"

	"storefront-service/models"
)

// ErrNotFound is returned when a record does not exist. Adapters translate
// their driver's no-document error into this so callers never import
// driver packages.
var ErrNotFound = errors.New("record not found")

// ErrInsufficientStock is returned by OrderRepo.Create when any item's
// live stock has fallen below the requested quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrDuplicatePath is returned when a custom path is already claimed by
// another store.
var ErrDuplicatePath = errors.New("custom path already in use")

// StoreRepo defines the store record operations. Interfaces use plain Go
// types to make swapping adapters (and faking in tests) easy.
type StoreRepo interface {
	FindByID(ctx context.Context, id string) (*models.Store, error)
	// FindByCustomPath is an exact, case-sensitive field-equality lookup.
	FindByCustomPath(ctx context.Context, path string) (*models.Store, error)
	Create(ctx context.Context, store *models.Store) error
	UpdateSettings(ctx context.Context, id string, updates map[string]interface{}) error
	SetActive(ctx context.Context, id string, active bool) error
	FindAll(ctx context.Context) ([]models.Store, error)
}

// ProductRepo defines the product record operations, always scoped to a
// parent store.
type ProductRepo interface {
	FindByID(ctx context.Context, storeID, productID string) (*models.Product, error)
	// FindByStore returns a point-in-time snapshot, newest first.
	// inStockOnly restricts to stock > 0 for the public storefront.
	FindByStore(ctx context.Context, storeID string, inStockOnly bool) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, storeID, productID string, updates map[string]interface{}) error
	Delete(ctx context.Context, storeID, productID string) error
}

// OrderRepo defines the order record operations. Reads come in two modes:
// a point-in-time query for the storefront and a change subscription for
// the live dashboard.
type OrderRepo interface {
	// Create inserts the order and decrements every item's stock in the
	// same transaction, failing with ErrInsufficientStock if any item's
	// live stock is below the requested quantity.
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, storeID, orderID string) (*models.Order, error)
	FindByStore(ctx context.Context, storeID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, storeID, orderID string, status models.OrderStatus) error
	// WatchByStore streams the store's order documents as they are
	// inserted or updated until ctx is canceled.
	WatchByStore(ctx context.Context, storeID string) (<-chan models.Order, error)
}

// CartStore persists buyer carts across sessions. A nil cart with a nil
// error means no cart exists yet for the key.
type CartStore interface {
	Load(ctx context.Context, storeID, sessionID string) (*models.Cart, error)
	Save(ctx context.Context, sessionID string, cart *models.Cart) error
	Delete(ctx context.Context, storeID, sessionID string) error
}
