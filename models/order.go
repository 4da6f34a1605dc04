package models

import "time"

// OrderStatus is the fulfillment state of an order. Orders are created
// PENDING and only ever move forward.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusCompleted:
		return true
	}
	return false
}

func (s OrderStatus) rank() int {
	switch s {
	case OrderStatusPending:
		return 0
	case OrderStatusShipped:
		return 1
	case OrderStatusCompleted:
		return 2
	}
	return -1
}

// CanTransitionTo reports whether next is a legal fulfillment move.
// Status only ever moves forward.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return next.Valid() && next.rank() > s.rank()
}

// PaymentMethod tags how the buyer pays. CLIQ transfers happen out of
// band, so the buyer has to attach proof before the order is recorded.
type PaymentMethod string

const (
	PaymentMethodCOD  PaymentMethod = "COD"
	PaymentMethodCLIQ PaymentMethod = "CLIQ"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodCLIQ
}

// RequiresProof reports whether an order on this method must carry an
// uploaded proof of payment.
func (m PaymentMethod) RequiresProof() bool {
	return m == PaymentMethodCLIQ
}

// OrderItem is a frozen copy of a cart entry at submission time. Name and
// price are denormalized on purpose; later product edits must not change
// what the order says was bought.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// Order is an immutable-at-creation record of a completed checkout, with a
// mutable fulfillment status.
type Order struct {
	ID              string        `json:"id" bson:"_id"`
	StoreID         string        `json:"store_id" bson:"storeId"`
	CustomerName    string        `json:"customer_name" bson:"customerName"`
	CustomerPhone   string        `json:"customer_phone" bson:"customerPhone"`
	CustomerAddress string        `json:"customer_address" bson:"customerAddress"`
	Total           float64       `json:"total" bson:"total"`
	Items           []OrderItem   `json:"items" bson:"items"`
	Status          OrderStatus   `json:"status" bson:"status"`
	PaymentMethod   PaymentMethod `json:"payment_method" bson:"paymentMethod"`
	PaymentProofURL string        `json:"payment_proof_url,omitempty" bson:"paymentProofUrl,omitempty"`
	CreatedAt       time.Time     `json:"created_at" bson:"createdAt"`
}
