// Package gateway holds the payment-gateway adapters. Each adapter wraps the
// provider SDK behind a small interface so the order service can be exercised
// with fakes, and routes outbound calls through a circuit breaker.
package gateway

import (
	"context"

	"github.com/Sanushoffl/thelivostore/pkg/models"
)

// Order is a provider-side payment order as seen through the UPI-style flow.
// Receipt carries the internal order id back from the provider, which is how
// verification locates the order it should mark paid.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// CardGateway creates hosted checkout sessions for card payments.
type CardGateway interface {
	CreateCheckoutSession(ctx context.Context, ord *models.Order, origin string) (string, error)
}

// UPIGateway creates provider orders and verifies payment callbacks for the
// UPI/wallet flow.
type UPIGateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*Order, error)
	FetchOrder(ctx context.Context, orderID string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}
