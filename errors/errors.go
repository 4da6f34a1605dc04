package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two application errors by code and message, so a Wrap'd copy
// still compares equal to its base sentinel under errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code && t.Message == e.Message
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap returns a copy of base carrying err as its cause.
func Wrap(base *Error, err error) *Error {
	return New(base.Code, base.Message, err)
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden      = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Resolution and gate error types
var (
	ErrStoreNotFound    = New(http.StatusNotFound, "This store does not exist or the URL is incorrect", nil)
	ErrStoreUnreachable = New(http.StatusServiceUnavailable, "Could not load this store", nil)
	ErrStoreInactive    = New(http.StatusForbidden, "This store is currently inactive", nil)
)

// Checkout error types
var (
	ErrEmptyCart         = New(http.StatusBadRequest, "Your cart is empty", nil)
	ErrMissingField      = New(http.StatusBadRequest, "Name, phone and address are required", nil)
	ErrMissingProof      = New(http.StatusBadRequest, "This payment method requires an uploaded proof", nil)
	ErrUploadFailure     = New(http.StatusBadGateway, "Failed to upload payment proof", nil)
	ErrPersistFailure    = New(http.StatusBadGateway, "Failed to place order", nil)
	ErrInsufficientStock = New(http.StatusConflict, "One or more items are no longer in stock", nil)
)

// Settings error types
var (
	ErrPathTaken    = New(http.StatusConflict, "This custom path is already in use", nil)
	ErrPathReserved = New(http.StatusBadRequest, "This custom path is reserved", nil)
)

// Respond writes err as a JSON response. Unknown errors are masked as an
// internal server error so collaborator details never leak to buyers.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !stderrors.As(err, &appErr) {
		appErr = Wrap(ErrInternalServer, err)
	}
	c.JSON(appErr.Code, appErr)
}
