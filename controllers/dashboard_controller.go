package controllers

import (
	"errors"
	"io"
	"net/http"

	apperrors "storefront-service/errors"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardController serves the merchant's own data. The principal's
// store id selects the store; there is no cross-store access.
type DashboardController struct {
	stores   repository.StoreRepo
	products repository.ProductRepo
	orders   repository.OrderRepo
	log      *zap.Logger
}

func NewDashboardController(stores repository.StoreRepo, products repository.ProductRepo, orders repository.OrderRepo, log *zap.Logger) *DashboardController {
	return &DashboardController{
		stores:   stores,
		products: products,
		orders:   orders,
		log:      log,
	}
}

func (dc *DashboardController) ownStore(c *gin.Context) (*models.Store, bool) {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrUnauthorized, err))
		return nil, false
	}

	store, err := dc.stores.FindByID(c.Request.Context(), principal.StoreID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			apperrors.Respond(c, apperrors.ErrStoreNotFound)
			return nil, false
		}
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrStoreUnreachable, err))
		return nil, false
	}
	return store, true
}

// GetOverview returns the merchant's store record. An inactive store still
// renders here; the gate only attaches a warning for the UI banner.
func (dc *DashboardController) GetOverview(c *gin.Context) {
	store, ok := dc.ownStore(c)
	if !ok {
		return
	}

	access := services.CheckAccess(store, services.SurfaceDashboard)
	resp := gin.H{"store": store}
	if access.Warning != "" {
		resp["warning"] = access.Warning
	}
	c.JSON(http.StatusOK, resp)
}

type productRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,gte=0"`
	Stock    int     `json:"stock" binding:"gte=0"`
	ImageURL string  `json:"image_url"`
}

// ListProducts returns the merchant's full catalog including out-of-stock
// items, unlike the public storefront read.
func (dc *DashboardController) ListProducts(c *gin.Context) {
	store, ok := dc.ownStore(c)
	if !ok {
		return
	}

	products, err := dc.products.FindByStore(c.Request.Context(), store.ID, false)
	if err != nil {
		dc.log.Error("failed to list products", zap.String("store_id", store.ID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (dc *DashboardController) CreateProduct(c *gin.Context) {
	store, ok := dc.ownStore(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	product := &models.Product{
		StoreID:  store.ID,
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		ImageURL: req.ImageURL,
	}
	if err := dc.products.Create(c.Request.Context(), product); err != nil {
		dc.log.Error("failed to create product", zap.String("store_id", store.ID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (dc *DashboardController) UpdateProduct(c *gin.Context) {
	store, ok := dc.ownStore(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	updates := map[string]interface{}{
		"name":     req.Name,
		"price":    req.Price,
		"stock":    req.Stock,
		"imageUrl": req.ImageURL,
	}
	err := dc.products.Update(c.Request.Context(), store.ID, c.Param("product_id"), updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			apperrors.Respond(c, apperrors.ErrNotFound)
			return
		}
		dc.log.Error("failed to update product", zap.String("store_id", store.ID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product updated"})
}

func (dc *DashboardController) DeleteProduct(c *gin.Context) {
	store, ok := dc.ownStore(c)
	if !ok {
		return
	}

	err := dc.products.Delete(c.Request.Context(), store.ID, c.Param("product_id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			apperrors.Respond(c, apperrors.ErrNotFound)
			return
		}
		dc.log.Error("failed to delete product", zap.String("store_id", store.ID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// ListOrders is the dashboard's point-in-time order read; StreamOrders is
// the live companion.
func (dc *DashboardController) ListOrders(c *gin.Context) {
	store, ok := dc.ownStore(c)
	if !ok {
		return
	}

	orders, err := dc.orders.FindByStore(c.Request.Context(), store.ID)
	if err != nil {
		dc.log.Error("failed to list orders", zap.String("store_id", store.ID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type orderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order forward through fulfillment.
func (dc *DashboardController) UpdateOrderStatus(c *gin.Context) {
	store, ok := dc.ownStore(c)
	if !ok {
		return
	}

	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	orderID := c.Param("order_id")
	order, err := dc.orders.FindByID(c.Request.Context(), store.ID, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			apperrors.Respond(c, apperrors.ErrNotFound)
			return
		}
		apperrors.Respond(c, err)
		return
	}

	if !order.Status.CanTransitionTo(req.Status) {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest,
			errors.New("illegal status transition")))
		return
	}

	if err := dc.orders.UpdateStatus(c.Request.Context(), store.ID, orderID, req.Status); err != nil {
		dc.log.Error("failed to update order status", zap.String("store_id", store.ID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order updated"})
}

// StreamOrders pushes the store's order changes over SSE until the client
// disconnects. This is the subscribe-for-changes read mode; the storefront
// only ever uses point-in-time queries.
func (dc *DashboardController) StreamOrders(c *gin.Context) {
	store, ok := dc.ownStore(c)
	if !ok {
		return
	}

	changes, err := dc.orders.WatchByStore(c.Request.Context(), store.ID)
	if err != nil {
		dc.log.Error("failed to open order stream", zap.String("store_id", store.ID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		order, open := <-changes
		if !open {
			return false
		}
		c.SSEvent("order", order)
		return true
	})
}

type settingsRequest struct {
	Name        *string `json:"name"`
	LogoURL     *string `json:"logo_url"`
	ThemeColor  *string `json:"theme_color"`
	BankName    *string `json:"bank_name"`
	BankAccount *string `json:"bank_account"`
	CustomPath  *string `json:"custom_path"`
}

// UpdateSettings applies branding/bank edits and custom path claims.
// Reserved segments can never be claimed and a path owned by another store
// is rejected.
func (dc *DashboardController) UpdateSettings(c *gin.Context) {
	store, ok := dc.ownStore(c)
	if !ok {
		return
	}

	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	updates := map[string]interface{}{}
	setIf(updates, "name", req.Name)
	setIf(updates, "logoUrl", req.LogoURL)
	setIf(updates, "themeColor", req.ThemeColor)
	setIf(updates, "bankName", req.BankName)
	setIf(updates, "bankAccount", req.BankAccount)
	if req.CustomPath != nil {
		if routes.Reserved(*req.CustomPath) {
			apperrors.Respond(c, apperrors.ErrPathReserved)
			return
		}
		updates["customPath"] = *req.CustomPath
	}
	if len(updates) == 0 {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, errors.New("no fields to update")))
		return
	}

	if err := dc.stores.UpdateSettings(c.Request.Context(), store.ID, updates); err != nil {
		if errors.Is(err, repository.ErrDuplicatePath) {
			apperrors.Respond(c, apperrors.ErrPathTaken)
			return
		}
		dc.log.Error("failed to update settings", zap.String("store_id", store.ID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "settings updated"})
}

func setIf(updates map[string]interface{}, key string, val *string) {
	if val != nil {
		updates[key] = *val
	}
}
