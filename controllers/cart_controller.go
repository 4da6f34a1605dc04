package controllers

import (
	"errors"
	"net/http"

	apperrors "storefront-service/errors"
	"storefront-service/middleware"
	"storefront-service/repository"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartController struct {
	storefront *StorefrontController
	carts      *services.CartService
	log        *zap.Logger
}

func NewCartController(storefront *StorefrontController, carts *services.CartService, log *zap.Logger) *CartController {
	return &CartController{
		storefront: storefront,
		carts:      carts,
		log:        log,
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type setQuantityRequest struct {
	// Zero is meaningful here (it removes the entry), so no min tag.
	Quantity int `json:"quantity"`
}

// GetCart returns the session's cart for the store, hydrating an empty one
// when nothing is persisted yet.
func (cc *CartController) GetCart(c *gin.Context) {
	store, ok := cc.storefront.resolveForStorefront(c, c.Param("reference"))
	if !ok {
		return
	}
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	cart, err := cc.carts.Get(c.Request.Context(), store.ID, sessionID)
	if err != nil {
		cc.log.Error("failed to get cart", zap.String("store_id", store.ID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem adds or tops up an item. The response carries the resulting
// cart; a clamped quantity is visible there, not an error.
func (cc *CartController) AddItem(c *gin.Context) {
	store, ok := cc.storefront.resolveForStorefront(c, c.Param("reference"))
	if !ok {
		return
	}
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	cart, err := cc.carts.Add(c.Request.Context(), store.ID, sessionID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			apperrors.Respond(c, apperrors.ErrNotFound)
			return
		}
		cc.log.Error("failed to add cart item", zap.String("store_id", store.ID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// SetQuantity updates one entry; quantity zero removes it.
func (cc *CartController) SetQuantity(c *gin.Context) {
	store, ok := cc.storefront.resolveForStorefront(c, c.Param("reference"))
	if !ok {
		return
	}
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	cart, err := cc.carts.SetQuantity(c.Request.Context(), store.ID, sessionID, c.Param("product_id"), req.Quantity)
	if err != nil {
		cc.log.Error("failed to set cart quantity", zap.String("store_id", store.ID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem deletes one entry; removing an absent entry is a no-op.
func (cc *CartController) RemoveItem(c *gin.Context) {
	store, ok := cc.storefront.resolveForStorefront(c, c.Param("reference"))
	if !ok {
		return
	}
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	cart, err := cc.carts.Remove(c.Request.Context(), store.ID, sessionID, c.Param("product_id"))
	if err != nil {
		cc.log.Error("failed to remove cart item", zap.String("store_id", store.ID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ClearCart empties the session's cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	store, ok := cc.storefront.resolveForStorefront(c, c.Param("reference"))
	if !ok {
		return
	}
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	if err := cc.carts.Clear(c.Request.Context(), store.ID, sessionID); err != nil {
		cc.log.Error("failed to clear cart", zap.String("store_id", store.ID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
