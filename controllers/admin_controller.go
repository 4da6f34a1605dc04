package controllers

import (
	"errors"
	"net/http"

	apperrors "storefront-service/errors"
	"storefront-service/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminController is the platform operator's activation surface.
type AdminController struct {
	stores repository.StoreRepo
	log    *zap.Logger
}

func NewAdminController(stores repository.StoreRepo, log *zap.Logger) *AdminController {
	return &AdminController{
		stores: stores,
		log:    log,
	}
}

func (ac *AdminController) ListStores(c *gin.Context) {
	stores, err := ac.stores.FindAll(c.Request.Context())
	if err != nil {
		ac.log.Error("failed to list stores", zap.Error(err))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

type activationRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetStoreActive flips a store's activation flag. Deactivation takes the
// public storefront down immediately; the merchant dashboard stays up with
// a warning.
func (ac *AdminController) SetStoreActive(c *gin.Context) {
	var req activationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	storeID := c.Param("store_id")
	if err := ac.stores.SetActive(c.Request.Context(), storeID, *req.Active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			apperrors.Respond(c, apperrors.ErrNotFound)
			return
		}
		ac.log.Error("failed to set store activation", zap.String("store_id", storeID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "store updated"})
}
