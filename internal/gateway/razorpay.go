package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/sirupsen/logrus"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/internal/circuitbreaker"
)

// RazorpayGateway wraps the Razorpay SDK for the UPI/wallet flow. Signature
// verification is done locally with the shared key secret; order status is
// always re-fetched from the provider before any payment is trusted.
type RazorpayGateway struct {
	client    *razorpay.Client
	keySecret string
	breaker   *circuitbreaker.Breaker
	logger    *logrus.Logger
}

func NewRazorpayGateway(keyID, keySecret string, breaker *circuitbreaker.Breaker, logger *logrus.Logger) *RazorpayGateway {
	return &RazorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
		breaker:   breaker,
		logger:    logger,
	}
}

// CreateOrder creates a provider-side order. Amount is in minor units (paise)
// and receipt carries the internal order id for the verification round trip.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}

	var body map[string]interface{}
	err := g.breaker.Execute(func() error {
		var callErr error
		body, callErr = g.client.Order.Create(data, nil)
		return callErr
	})
	if err != nil {
		g.logger.WithError(err).WithField("receipt", receipt).Error("Failed to create razorpay order")
		return nil, apperr.Wrap(apperr.Gateway, "failed to create payment order", err)
	}

	ord := orderFromBody(body)
	g.logger.WithFields(logrus.Fields{
		"razorpay_order_id": ord.ID,
		"receipt":           ord.Receipt,
	}).Info("Razorpay order created")
	return ord, nil
}

// FetchOrder loads the authoritative provider-side order state.
func (g *RazorpayGateway) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	var body map[string]interface{}
	err := g.breaker.Execute(func() error {
		var callErr error
		body, callErr = g.client.Order.Fetch(orderID, nil, nil)
		return callErr
	})
	if err != nil {
		g.logger.WithError(err).WithField("razorpay_order_id", orderID).Error("Failed to fetch razorpay order")
		return nil, apperr.Wrap(apperr.Gateway, "failed to fetch payment order", err)
	}
	return orderFromBody(body), nil
}

// VerifySignature recomputes HMAC-SHA256(order_id + "|" + payment_id) with the
// key secret and compares it to the caller-supplied signature in constant time.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifyRazorpaySignature(orderID, paymentID, signature, g.keySecret)
}

// VerifyRazorpaySignature is the raw HMAC check, split out so it can be tested
// without a client.
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func orderFromBody(body map[string]interface{}) *Order {
	ord := &Order{}
	if v, ok := body["id"].(string); ok {
		ord.ID = v
	}
	if v, ok := body["currency"].(string); ok {
		ord.Currency = v
	}
	if v, ok := body["receipt"].(string); ok {
		ord.Receipt = v
	}
	if v, ok := body["status"].(string); ok {
		ord.Status = v
	}
	ord.Amount = toInt64(body["amount"])
	return ord
}

// toInt64 tolerates the number types the SDK's JSON decoding may produce.
func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
