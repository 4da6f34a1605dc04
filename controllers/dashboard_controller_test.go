package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOrderRepo struct {
	byID map[string]*models.Order
	set  []models.OrderStatus
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error { return nil }

func (f *fakeOrderRepo) FindByID(ctx context.Context, storeID, orderID string) (*models.Order, error) {
	if order, ok := f.byID[orderID]; ok && order.StoreID == storeID {
		return order, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeOrderRepo) FindByStore(ctx context.Context, storeID string) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, storeID, orderID string, status models.OrderStatus) error {
	f.set = append(f.set, status)
	return nil
}

func (f *fakeOrderRepo) WatchByStore(ctx context.Context, storeID string) (<-chan models.Order, error) {
	return nil, nil
}

func principalMiddleware(storeID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.PrincipalContextKey, middleware.Principal{StoreID: storeID})
		c.Next()
	}
}

func newDashboardRouter(stores *fakeStoreRepo, orders *fakeOrderRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	dc := NewDashboardController(stores, &fakeProductRepo{}, orders, zap.NewNop())

	r := gin.New()
	g := r.Group("/dashboard", principalMiddleware("abc"))
	g.GET("", dc.GetOverview)
	g.PATCH("/orders/:order_id/status", dc.UpdateOrderStatus)
	g.PUT("/settings", dc.UpdateSettings)
	return r
}

func TestDashboardInactiveStoreStillRenders(t *testing.T) {
	inactive := false
	stores := &fakeStoreRepo{stores: map[string]*models.Store{
		"abc": {ID: "abc", Name: "My Shop", IsActive: &inactive},
	}}

	r := newDashboardRouter(stores, &fakeOrderRepo{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	// Unlike the storefront, an inactive store's own dashboard answers
	// 200 and carries a warning for the banner.
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "warning")
}

func TestDashboardActiveStoreHasNoWarning(t *testing.T) {
	stores := &fakeStoreRepo{stores: map[string]*models.Store{
		"abc": {ID: "abc", Name: "My Shop"},
	}}

	r := newDashboardRouter(stores, &fakeOrderRepo{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body, "warning")
}

func TestUpdateOrderStatusForward(t *testing.T) {
	stores := &fakeStoreRepo{stores: map[string]*models.Store{"abc": {ID: "abc"}}}
	orders := &fakeOrderRepo{byID: map[string]*models.Order{
		"o1": {ID: "o1", StoreID: "abc", Status: models.OrderStatusPending},
	}}

	r := newDashboardRouter(stores, orders)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/dashboard/orders/o1/status",
		strings.NewReader(`{"status":"SHIPPED"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []models.OrderStatus{models.OrderStatusShipped}, orders.set)
}

func TestUpdateOrderStatusBackwardRejected(t *testing.T) {
	stores := &fakeStoreRepo{stores: map[string]*models.Store{"abc": {ID: "abc"}}}
	orders := &fakeOrderRepo{byID: map[string]*models.Order{
		"o1": {ID: "o1", StoreID: "abc", Status: models.OrderStatusCompleted},
	}}

	r := newDashboardRouter(stores, orders)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/dashboard/orders/o1/status",
		strings.NewReader(`{"status":"PENDING"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, orders.set)
}

func TestUpdateSettingsRejectsReservedPath(t *testing.T) {
	stores := &fakeStoreRepo{stores: map[string]*models.Store{"abc": {ID: "abc"}}}

	r := newDashboardRouter(stores, &fakeOrderRepo{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/dashboard/settings",
		strings.NewReader(`{"custom_path":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
