package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	apperrors "storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOrderRepo struct {
	created   []*models.Order
	createErr error
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	order.ID = "order-1"
	f.created = append(f.created, order)
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, storeID, orderID string) (*models.Order, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeOrderRepo) FindByStore(ctx context.Context, storeID string) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, storeID, orderID string, status models.OrderStatus) error {
	return nil
}

func (f *fakeOrderRepo) WatchByStore(ctx context.Context, storeID string) (<-chan models.Order, error) {
	return nil, nil
}

type fakeCartStore struct {
	carts   map[string]*models.Cart
	deleted []string
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[string]*models.Cart{}}
}

func (f *fakeCartStore) Load(ctx context.Context, storeID, sessionID string) (*models.Cart, error) {
	cart, ok := f.carts[storeID+"/"+sessionID]
	if !ok {
		return nil, nil
	}
	return cart, nil
}

func (f *fakeCartStore) Save(ctx context.Context, sessionID string, cart *models.Cart) error {
	f.carts[cart.StoreID+"/"+sessionID] = cart
	return nil
}

func (f *fakeCartStore) Delete(ctx context.Context, storeID, sessionID string) error {
	delete(f.carts, storeID+"/"+sessionID)
	f.deleted = append(f.deleted, storeID+"/"+sessionID)
	return nil
}

type fakeUploader struct {
	url     string
	err     error
	uploads int
}

func (f *fakeUploader) Upload(ctx context.Context, storeID, filename string, body io.Reader) (string, error) {
	f.uploads++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	orders []*models.Order
	done   chan struct{}
}

func (f *fakeNotifier) OrderCreated(ctx context.Context, order *models.Order) {
	f.mu.Lock()
	f.orders = append(f.orders, order)
	f.mu.Unlock()
	if f.done != nil {
		close(f.done)
	}
}

func testCart() *models.Cart {
	cart := &models.Cart{StoreID: "s1"}
	cart.Add(&models.Product{ID: "p1", Name: "Mug", Price: 10.00, Stock: 5}, 2)
	return cart
}

func validRequest(method models.PaymentMethod) CheckoutRequest {
	req := CheckoutRequest{
		CustomerName:    "Lina",
		CustomerPhone:   "0790000000",
		CustomerAddress: "Amman",
		PaymentMethod:   method,
	}
	if method.RequiresProof() {
		req.Proof = &ProofFile{Filename: "proof.png", Body: strings.NewReader("img")}
	}
	return req
}

func newTestCheckout(orders *fakeOrderRepo, carts *fakeCartStore, uploader *fakeUploader, notifier OrderNotifier) *CheckoutService {
	return NewCheckoutService(orders, carts, uploader, notifier, zap.NewNop())
}

func TestSubmitSuccessWithoutProof(t *testing.T) {
	orders := &fakeOrderRepo{}
	carts := newFakeCartStore()
	uploader := &fakeUploader{}
	store := &models.Store{ID: "s1"}
	cart := testCart()
	carts.Save(context.Background(), "sess", cart)

	svc := newTestCheckout(orders, carts, uploader, nil)
	order, err := svc.Submit(context.Background(), store, "sess", cart, validRequest(models.PaymentMethodCOD))

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 20.00, order.Total, 1e-9)
	assert.Empty(t, order.PaymentProofURL)
	assert.Equal(t, 0, uploader.uploads, "COD must not touch the uploader")

	// Cart cleared only after a successful persist.
	loaded, _ := carts.Load(context.Background(), "s1", "sess")
	assert.Nil(t, loaded)
}

func TestSubmitEmptyCart(t *testing.T) {
	svc := newTestCheckout(&fakeOrderRepo{}, newFakeCartStore(), &fakeUploader{}, nil)

	_, err := svc.Submit(context.Background(), &models.Store{ID: "s1"}, "sess",
		&models.Cart{StoreID: "s1"}, validRequest(models.PaymentMethodCOD))

	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageValidate, stageErr.Stage)
}

func TestSubmitMissingField(t *testing.T) {
	svc := newTestCheckout(&fakeOrderRepo{}, newFakeCartStore(), &fakeUploader{}, nil)

	req := validRequest(models.PaymentMethodCOD)
	req.CustomerPhone = "   "
	_, err := svc.Submit(context.Background(), &models.Store{ID: "s1"}, "sess", testCart(), req)

	assert.ErrorIs(t, err, apperrors.ErrMissingField)
}

func TestSubmitMissingProof(t *testing.T) {
	uploader := &fakeUploader{}
	svc := newTestCheckout(&fakeOrderRepo{}, newFakeCartStore(), uploader, nil)

	req := validRequest(models.PaymentMethodCLIQ)
	req.Proof = nil
	_, err := svc.Submit(context.Background(), &models.Store{ID: "s1"}, "sess", testCart(), req)

	assert.ErrorIs(t, err, apperrors.ErrMissingProof)
	assert.Equal(t, 0, uploader.uploads, "validation failures never contact collaborators")
}

func TestSubmitFailedUploadHaltsPipeline(t *testing.T) {
	orders := &fakeOrderRepo{}
	carts := newFakeCartStore()
	uploader := &fakeUploader{err: errors.New("bucket unavailable")}
	cart := testCart()
	carts.Save(context.Background(), "sess", cart)

	svc := newTestCheckout(orders, carts, uploader, nil)
	_, err := svc.Submit(context.Background(), &models.Store{ID: "s1"}, "sess", cart,
		validRequest(models.PaymentMethodCLIQ))

	assert.ErrorIs(t, err, apperrors.ErrUploadFailure)
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageUpload, stageErr.Stage)

	// No order record exists and the cart still holds its entries.
	assert.Empty(t, orders.created)
	loaded, _ := carts.Load(context.Background(), "s1", "sess")
	require.NotNil(t, loaded)
	assert.Len(t, loaded.Items, 1)
}

func TestSubmitFailedPersistPreservesCart(t *testing.T) {
	orders := &fakeOrderRepo{createErr: errors.New("write failed")}
	carts := newFakeCartStore()
	cart := testCart()
	carts.Save(context.Background(), "sess", cart)

	svc := newTestCheckout(orders, carts, &fakeUploader{url: "https://bucket/proof"}, nil)
	_, err := svc.Submit(context.Background(), &models.Store{ID: "s1"}, "sess", cart,
		validRequest(models.PaymentMethodCLIQ))

	assert.ErrorIs(t, err, apperrors.ErrPersistFailure)
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StagePersist, stageErr.Stage)

	loaded, _ := carts.Load(context.Background(), "s1", "sess")
	assert.NotNil(t, loaded)
	assert.Empty(t, carts.deleted)
}

func TestSubmitInsufficientStock(t *testing.T) {
	orders := &fakeOrderRepo{createErr: repository.ErrInsufficientStock}
	svc := newTestCheckout(orders, newFakeCartStore(), &fakeUploader{}, nil)

	_, err := svc.Submit(context.Background(), &models.Store{ID: "s1"}, "sess", testCart(),
		validRequest(models.PaymentMethodCOD))

	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
}

func TestSubmitProofURLOnOrder(t *testing.T) {
	orders := &fakeOrderRepo{}
	uploader := &fakeUploader{url: "https://bucket/payment_proofs/s1/1-proof.png"}
	svc := newTestCheckout(orders, newFakeCartStore(), uploader, nil)

	order, err := svc.Submit(context.Background(), &models.Store{ID: "s1"}, "sess", testCart(),
		validRequest(models.PaymentMethodCLIQ))

	require.NoError(t, err)
	assert.Equal(t, 1, uploader.uploads)
	assert.Equal(t, uploader.url, order.PaymentProofURL)
}

func TestSubmitFrozenSnapshots(t *testing.T) {
	orders := &fakeOrderRepo{}
	cart := &models.Cart{StoreID: "s1"}
	cart.Add(&models.Product{ID: "p1", Name: "Mug", Price: 10.00, Stock: 5}, 2)
	cart.Add(&models.Product{ID: "p2", Name: "Plate", Price: 4.50, Stock: 8}, 3)

	svc := newTestCheckout(orders, newFakeCartStore(), &fakeUploader{}, nil)
	order, err := svc.Submit(context.Background(), &models.Store{ID: "s1"}, "sess", cart,
		validRequest(models.PaymentMethodCOD))

	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, models.OrderItem{ProductID: "p1", Name: "Mug", Price: 10.00, Quantity: 2}, order.Items[0])
	assert.Equal(t, models.OrderItem{ProductID: "p2", Name: "Plate", Price: 4.50, Quantity: 3}, order.Items[1])
	assert.InDelta(t, 33.50, order.Total, 1e-9)
}

func TestSubmitNotifiesAfterPersist(t *testing.T) {
	notifier := &fakeNotifier{done: make(chan struct{})}
	svc := newTestCheckout(&fakeOrderRepo{}, newFakeCartStore(), &fakeUploader{}, notifier)

	_, err := svc.Submit(context.Background(), &models.Store{ID: "s1"}, "sess", testCart(),
		validRequest(models.PaymentMethodCOD))
	require.NoError(t, err)

	<-notifier.done
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	require.Len(t, notifier.orders, 1)
	assert.Equal(t, "order-1", notifier.orders[0].ID)
}
