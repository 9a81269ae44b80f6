package gateway

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/internal/circuitbreaker"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

// StripeGateway builds hosted checkout sessions. The API client is constructed
// once and injected; the package-global stripe key is never set.
type StripeGateway struct {
	api            *client.API
	currency       string
	deliveryCharge float64
	breaker        *circuitbreaker.Breaker
	logger         *logrus.Logger
}

func NewStripeGateway(secretKey, currency string, deliveryCharge float64, breaker *circuitbreaker.Breaker, logger *logrus.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{
		api:            api,
		currency:       currency,
		deliveryCharge: deliveryCharge,
		breaker:        breaker,
		logger:         logger,
	}
}

// CreateCheckoutSession creates a payment-mode checkout session with one line
// item per order line plus the delivery charge, and returns the hosted URL.
// The redirect targets are derived from the storefront origin.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, ord *models.Order, origin string) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(ord.Items)+1)
	for _, it := range ord.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(g.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(toMinorUnits(it.Price)),
			},
			Quantity: stripe.Int64(int64(it.Quantity)),
		})
	}
	lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(g.currency),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String("Delivery Charges"),
			},
			UnitAmount: stripe.Int64(toMinorUnits(g.deliveryCharge)),
		},
		Quantity: stripe.Int64(1),
	})

	orderID := ord.ID.Hex()
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(fmt.Sprintf("%s/verify?success=true&orderId=%s", origin, orderID)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/verify?success=false&orderId=%s", origin, orderID)),
		LineItems:  lineItems,
	}
	params.Context = ctx

	var sessionURL string
	err := g.breaker.Execute(func() error {
		sess, err := g.api.CheckoutSessions.New(params)
		if err != nil {
			return err
		}
		sessionURL = sess.URL
		return nil
	})
	if err != nil {
		g.logger.WithError(err).WithField("order_id", orderID).Error("Failed to create checkout session")
		return "", apperr.Wrap(apperr.Gateway, "failed to create checkout session", err)
	}

	g.logger.WithField("order_id", orderID).Info("Checkout session created")
	return sessionURL, nil
}

// toMinorUnits converts a major-unit amount to the gateway's integer minor
// units (e.g. rupees to paise).
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
