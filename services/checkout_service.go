package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"

	"go.uber.org/zap"
)

// Stage names the pipeline step a checkout attempt failed in.
type Stage string

const (
	StageValidate Stage = "validate"
	StageUpload   Stage = "upload"
	StagePersist  Stage = "persist"
)

// StageError reports which pipeline stage failed. Every stage failure
// leaves the cart intact; a retry is a fresh attempt from validation.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("checkout %s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ProofFile is an uploaded proof-of-payment artifact.
type ProofFile struct {
	Filename string
	Body     io.Reader
}

// CheckoutRequest carries the buyer's submission.
type CheckoutRequest struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	PaymentMethod   models.PaymentMethod
	Proof           *ProofFile
}

// ProofUploader stores a proof binary and returns a durable fetchable URL.
type ProofUploader interface {
	Upload(ctx context.Context, storeID, filename string, body io.Reader) (string, error)
}

// OrderNotifier announces a recorded order. Implementations must be
// best-effort; the pipeline never fails on notification problems.
type OrderNotifier interface {
	OrderCreated(ctx context.Context, order *models.Order)
}

// CheckoutService runs the order submission pipeline:
//
//	Validating -> (UploadingProof)? -> Persisting -> Done
//
// The upload, when required, strictly precedes the order write, and the
// write strictly precedes cart clearing. A failure in any stage halts the
// pipeline there and preserves the cart for resubmission.
type CheckoutService struct {
	orders   repository.OrderRepo
	carts    repository.CartStore
	uploader ProofUploader
	notifier OrderNotifier
	log      *zap.Logger
}

func NewCheckoutService(orders repository.OrderRepo, carts repository.CartStore, uploader ProofUploader, notifier OrderNotifier, log *zap.Logger) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		carts:    carts,
		uploader: uploader,
		notifier: notifier,
		log:      log,
	}
}

// Submit runs one checkout attempt for the session's cart. On success the
// order is returned in status PENDING and the cart has been cleared.
func (s *CheckoutService) Submit(ctx context.Context, store *models.Store, sessionID string, cart *models.Cart, req CheckoutRequest) (*models.Order, error) {
	if err := validate(cart, req); err != nil {
		return nil, &StageError{Stage: StageValidate, Err: err}
	}

	var proofURL string
	if req.PaymentMethod.RequiresProof() {
		url, err := s.uploader.Upload(ctx, store.ID, req.Proof.Filename, req.Proof.Body)
		if err != nil {
			s.log.Error("proof upload failed",
				zap.String("store_id", store.ID),
				zap.Error(err))
			return nil, &StageError{Stage: StageUpload, Err: apperrors.Wrap(apperrors.ErrUploadFailure, err)}
		}
		proofURL = url
	}

	// The total is computed from the frozen cart snapshots, never re-read
	// from live products. It is authoritative for the order record.
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	order := &models.Order{
		StoreID:         store.ID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Total:           cart.Total(),
		Items:           items,
		Status:          models.OrderStatusPending,
		PaymentMethod:   req.PaymentMethod,
		PaymentProofURL: proofURL,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		// A failed persist after a successful upload leaves the proof
		// object orphaned. That is accepted waste, not corruption.
		s.log.Error("order persist failed",
			zap.String("store_id", store.ID),
			zap.Error(err))
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, &StageError{Stage: StagePersist, Err: apperrors.Wrap(apperrors.ErrInsufficientStock, err)}
		}
		return nil, &StageError{Stage: StagePersist, Err: apperrors.Wrap(apperrors.ErrPersistFailure, err)}
	}

	// The order exists now; a failure to clear the cart must not undo the
	// submission, so it is only logged.
	if err := s.carts.Delete(ctx, store.ID, sessionID); err != nil {
		s.log.Warn("cart clear after order failed",
			zap.String("store_id", store.ID),
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	if s.notifier != nil {
		go s.notifier.OrderCreated(context.WithoutCancel(ctx), order)
	}

	s.log.Info("order placed",
		zap.String("store_id", store.ID),
		zap.String("order_id", order.ID),
		zap.Float64("total", order.Total),
		zap.String("payment_method", string(order.PaymentMethod)))
	return order, nil
}

func validate(cart *models.Cart, req CheckoutRequest) error {
	if cart == nil || len(cart.Items) == 0 {
		return apperrors.ErrEmptyCart
	}
	if strings.TrimSpace(req.CustomerName) == "" ||
		strings.TrimSpace(req.CustomerPhone) == "" ||
		strings.TrimSpace(req.CustomerAddress) == "" {
		return apperrors.ErrMissingField
	}
	if !req.PaymentMethod.Valid() {
		return apperrors.Wrap(apperrors.ErrBadRequest, fmt.Errorf("unknown payment method %q", req.PaymentMethod))
	}
	if req.PaymentMethod.RequiresProof() && req.Proof == nil {
		return apperrors.ErrMissingProof
	}
	return nil
}
