package services

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/models"
	"storefront-service/repository"

	"go.uber.org/zap"
)

// CartService owns all cart mutation for a buyer session. Nothing else
// writes cart state; every mutation goes through the clamped operations on
// models.Cart and is persisted before the call returns.
type CartService struct {
	products repository.ProductRepo
	carts    repository.CartStore
	log      *zap.Logger
}

func NewCartService(products repository.ProductRepo, carts repository.CartStore, log *zap.Logger) *CartService {
	return &CartService{
		products: products,
		carts:    carts,
		log:      log,
	}
}

// Get hydrates the session's cart for the store, returning an empty cart
// when none has been persisted yet.
func (s *CartService) Get(ctx context.Context, storeID, sessionID string) (*models.Cart, error) {
	cart, err := s.carts.Load(ctx, storeID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil {
		cart = &models.Cart{StoreID: storeID}
	}
	return cart, nil
}

// Add puts quantity units of the product into the cart, clamped to the
// product's stock. The product must belong to the store.
func (s *CartService) Add(ctx context.Context, storeID, sessionID, productID string, quantity int) (*models.Cart, error) {
	product, err := s.products.FindByID(ctx, storeID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("load product: %w", err)
	}

	cart, err := s.Get(ctx, storeID, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Add(product, quantity)
	if err := s.carts.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// Remove drops the product's entry if present.
func (s *CartService) Remove(ctx context.Context, storeID, sessionID, productID string) (*models.Cart, error) {
	cart, err := s.Get(ctx, storeID, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Remove(productID)
	if err := s.carts.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// SetQuantity updates an entry against its recorded stock ceiling. Zero or
// negative removes the entry; an absent entry is a no-op.
func (s *CartService) SetQuantity(ctx context.Context, storeID, sessionID, productID string, quantity int) (*models.Cart, error) {
	cart, err := s.Get(ctx, storeID, sessionID)
	if err != nil {
		return nil, err
	}

	cart.SetQuantity(productID, quantity)
	if err := s.carts.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// Clear empties the session's cart for the store.
func (s *CartService) Clear(ctx context.Context, storeID, sessionID string) error {
	if err := s.carts.Delete(ctx, storeID, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
