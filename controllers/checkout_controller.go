package controllers

import (
	"net/http"

	apperrors "storefront-service/errors"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// MaxProofSize bounds the multipart form so outsized proof screenshots are
// rejected before any upload starts.
const MaxProofSize = 10 * 1024 * 1024

// CheckoutForm is the multipart checkout submission. The proof file rides
// alongside as form file "payment_proof".
type CheckoutForm struct {
	CustomerName    string `form:"customer_name" validate:"required"`
	CustomerPhone   string `form:"customer_phone" validate:"required"`
	CustomerAddress string `form:"customer_address" validate:"required"`
	PaymentMethod   string `form:"payment_method" validate:"required,oneof=COD CLIQ"`
}

type CheckoutController struct {
	storefront *StorefrontController
	carts      *services.CartService
	checkout   *services.CheckoutService
	validate   *validator.Validate
	log        *zap.Logger
}

func NewCheckoutController(storefront *StorefrontController, carts *services.CartService, checkout *services.CheckoutService, log *zap.Logger) *CheckoutController {
	return &CheckoutController{
		storefront: storefront,
		carts:      carts,
		checkout:   checkout,
		validate:   validator.New(),
		log:        log,
	}
}

// Submit runs one checkout attempt for the session's cart. The pipeline
// preserves the cart on any failure, so the buyer can correct and retry.
func (cc *CheckoutController) Submit(c *gin.Context) {
	store, ok := cc.storefront.resolveForStorefront(c, c.Param("reference"))
	if !ok {
		return
	}
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxProofSize)

	var form CheckoutForm
	if err := c.ShouldBind(&form); err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrMissingField, err))
		return
	}
	if err := cc.validate.Struct(form); err != nil {
		apperrors.Respond(c, apperrors.Wrap(apperrors.ErrMissingField, err))
		return
	}

	req := services.CheckoutRequest{
		CustomerName:    form.CustomerName,
		CustomerPhone:   form.CustomerPhone,
		CustomerAddress: form.CustomerAddress,
		PaymentMethod:   models.PaymentMethod(form.PaymentMethod),
	}

	if fileHeader, err := c.FormFile("payment_proof"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			apperrors.Respond(c, apperrors.Wrap(apperrors.ErrUploadFailure, err))
			return
		}
		defer file.Close()
		req.Proof = &services.ProofFile{
			Filename: fileHeader.Filename,
			Body:     file,
		}
	}

	cart, err := cc.carts.Get(c.Request.Context(), store.ID, sessionID)
	if err != nil {
		cc.log.Error("failed to load cart for checkout", zap.String("store_id", store.ID), zap.Error(err))
		apperrors.Respond(c, err)
		return
	}

	order, err := cc.checkout.Submit(c.Request.Context(), store, sessionID, cart, req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id": order.ID,
		"status":   order.Status,
		"total":    order.Total,
	})
}
