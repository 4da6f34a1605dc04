package controllers

import (
	"net/http"

	apperrors "storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StoreView is the public shape of a store. Owner contact and
// subscription fields stay server-side; bank details are exposed because
// buyers paying by CLIQ transfer to them.
type StoreView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LogoURL     string `json:"logo_url,omitempty"`
	ThemeColor  string `json:"theme_color,omitempty"`
	BankName    string `json:"bank_name,omitempty"`
	BankAccount string `json:"bank_account,omitempty"`
	CustomPath  string `json:"custom_path,omitempty"`
}

func NewStoreView(store *models.Store) StoreView {
	return StoreView{
		ID:          store.ID,
		Name:        store.Name,
		LogoURL:     store.LogoURL,
		ThemeColor:  store.ThemeColor,
		BankName:    store.BankName,
		BankAccount: store.BankAccount,
		CustomPath:  store.CustomPath,
	}
}

type StorefrontController struct {
	resolver *services.StoreResolver
	products repository.ProductRepo
	log      *zap.Logger
}

func NewStorefrontController(resolver *services.StoreResolver, products repository.ProductRepo, log *zap.Logger) *StorefrontController {
	return &StorefrontController{
		resolver: resolver,
		products: products,
		log:      log,
	}
}

// resolveForStorefront resolves the reference and applies the activation
// gate for the public surface. Inactive stores are fatal here.
func (sc *StorefrontController) resolveForStorefront(c *gin.Context, reference string) (*models.Store, bool) {
	store, err := sc.resolver.Resolve(c.Request.Context(), reference)
	if err != nil {
		apperrors.Respond(c, err)
		return nil, false
	}
	if access := services.CheckAccess(store, services.SurfaceStorefront); !access.Allowed {
		apperrors.Respond(c, apperrors.ErrStoreInactive)
		return nil, false
	}
	return store, true
}

// GetStore serves the public storefront page: branding plus the in-stock
// catalog, newest first, as a point-in-time read.
func (sc *StorefrontController) GetStore(c *gin.Context) {
	reference := c.Param("reference")
	store, ok := sc.resolveForStorefront(c, reference)
	if !ok {
		return
	}

	products, err := sc.products.FindByStore(c.Request.Context(), store.ID, true)
	if err != nil {
		sc.log.Error("failed to load catalog",
			zap.String("store_id", store.ID),
			zap.Error(err))
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrStoreUnreachable, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"store":    NewStoreView(store),
		"products": products,
	})
}

// Home serves the platform landing page.
func (sc *StorefrontController) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "storefront platform",
		"message": "Reach a store at /{custom-path} or /{store-id}",
	})
}
