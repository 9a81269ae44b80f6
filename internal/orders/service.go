// Package orders orchestrates order creation across the three payment
// methods, payment verification, and the admin order lifecycle.
package orders

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/internal/events"
	"github.com/Sanushoffl/thelivostore/internal/gateway"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

// DeliveryCharge is the fixed surcharge added to every order.
const DeliveryCharge = 10.0

// OrderStore is the slice of persistence the order service needs.
type OrderStore interface {
	InsertOrder(ctx context.Context, order *models.Order) error
	FindOrderByID(ctx context.Context, id string) (*models.Order, error)
	FindAllOrders(ctx context.Context) ([]models.Order, error)
	FindOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	SetOrderPayment(ctx context.Context, id string, paid bool) error
	SetOrderStatus(ctx context.Context, id, status string) error
	DeleteOrder(ctx context.Context, id string) error
}

// CartStore clears a user's cart after checkout or payment confirmation.
type CartStore interface {
	ClearCart(ctx context.Context, userID string) error
}

type Service struct {
	store     OrderStore
	carts     CartStore
	card      gateway.CardGateway
	upi       gateway.UPIGateway
	publisher events.Publisher // nil disables event publishing
	currency  string
	logger    *logrus.Logger
}

func NewService(store OrderStore, carts CartStore, card gateway.CardGateway, upi gateway.UPIGateway, publisher events.Publisher, currency string, logger *logrus.Logger) *Service {
	return &Service{
		store:     store,
		carts:     carts,
		card:      card,
		upi:       upi,
		publisher: publisher,
		currency:  currency,
		logger:    logger,
	}
}

// PlaceOrderInput is the checkout payload common to all three payment
// methods. Amount is the client's claimed total; it is required, and the
// service recomputes it and rejects a mismatch.
type PlaceOrderInput struct {
	Items   []models.OrderItem
	Amount  float64
	Address models.Address
}

func (s *Service) validateAndTotal(in PlaceOrderInput) (float64, error) {
	if len(in.Items) == 0 {
		return 0, apperr.New(apperr.Validation, "order items are required")
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 || it.Price < 0 {
			return 0, apperr.New(apperr.Validation, "invalid order item")
		}
	}
	if in.Address.Street == "" || in.Address.City == "" || in.Address.Zipcode == "" {
		return 0, apperr.New(apperr.Validation, "shipping address is required")
	}
	if in.Amount == 0 {
		return 0, apperr.New(apperr.Validation, "order amount is required")
	}

	var total float64
	for _, it := range in.Items {
		total += it.Price * float64(it.Quantity)
	}
	total += DeliveryCharge

	if math.Abs(in.Amount-total) > 1e-9 {
		return 0, apperr.New(apperr.Validation, "order amount does not match items total")
	}
	return total, nil
}

func (s *Service) newOrder(userID string, in PlaceOrderInput, total float64, method string) *models.Order {
	return &models.Order{
		UserID:        userID,
		Items:         in.Items,
		Address:       in.Address,
		Amount:        total,
		PaymentMethod: method,
		Payment:       false,
		Status:        models.StatusPlaced,
		Date:          time.Now(),
	}
}

// PlaceOrder handles cash-on-delivery checkout: the order is created
// unpaid and the cart is cleared immediately. The order write and the cart
// clear are two independent document writes with no compensation.
func (s *Service) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (*models.Order, error) {
	total, err := s.validateAndTotal(in)
	if err != nil {
		return nil, err
	}

	order := s.newOrder(userID, in, total, models.PaymentMethodCOD)
	if err := s.store.InsertOrder(ctx, order); err != nil {
		return nil, err
	}
	if err := s.carts.ClearCart(ctx, userID); err != nil {
		return nil, err
	}

	s.publishPlaced(order)
	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID.Hex(),
		"user_id":  userID,
		"amount":   order.Amount,
	}).Info("COD order placed")
	return order, nil
}

// PlaceOrderStripe creates an unpaid order and a hosted checkout session for
// it. The cart is cleared later, once payment is confirmed. If session
// creation fails the order document remains behind, matching the unguarded
// two-step flow this service models.
func (s *Service) PlaceOrderStripe(ctx context.Context, userID string, in PlaceOrderInput, origin string) (*models.Order, string, error) {
	total, err := s.validateAndTotal(in)
	if err != nil {
		return nil, "", err
	}

	order := s.newOrder(userID, in, total, models.PaymentMethodStripe)
	if err := s.store.InsertOrder(ctx, order); err != nil {
		return nil, "", err
	}

	sessionURL, err := s.card.CreateCheckoutSession(ctx, order, origin)
	if err != nil {
		return nil, "", err
	}

	s.publishPlaced(order)
	return order, sessionURL, nil
}

// VerifyStripe settles a card checkout from the redirect callback. It trusts
// the client-reported success flag: no signature or gateway status check
// backs it, unlike the UPI path. On reported success the order is marked paid
// and the cart cleared; on reported failure the order is hard-deleted.
func (s *Service) VerifyStripe(ctx context.Context, userID, orderID string, success bool) (bool, error) {
	if orderID == "" {
		return false, apperr.New(apperr.Validation, "order id is required")
	}

	if !success {
		if err := s.store.DeleteOrder(ctx, orderID); err != nil {
			return false, err
		}
		s.logger.WithField("order_id", orderID).Info("Order deleted after cancelled payment")
		return false, nil
	}

	if err := s.store.SetOrderPayment(ctx, orderID, true); err != nil {
		return false, err
	}
	if err := s.carts.ClearCart(ctx, userID); err != nil {
		return false, err
	}

	s.publishPaid(ctx, orderID)
	return true, nil
}

// PlaceOrderRazorpay creates an unpaid order, then a provider-side order
// whose receipt carries the internal order id back through verification.
func (s *Service) PlaceOrderRazorpay(ctx context.Context, userID string, in PlaceOrderInput) (*gateway.Order, error) {
	total, err := s.validateAndTotal(in)
	if err != nil {
		return nil, err
	}

	order := s.newOrder(userID, in, total, models.PaymentMethodRazorpay)
	if err := s.store.InsertOrder(ctx, order); err != nil {
		return nil, err
	}

	amountPaise := int64(math.Round(total * 100))
	gwOrder, err := s.upi.CreateOrder(ctx, amountPaise, strings.ToUpper(s.currency), order.ID.Hex())
	if err != nil {
		return nil, err
	}

	s.publishPlaced(order)
	return gwOrder, nil
}

// VerifyRazorpayInput is the gateway callback payload.
type VerifyRazorpayInput struct {
	RazorpayOrderID   string
	RazorpayPaymentID string
	RazorpaySignature string
}

// VerifyRazorpay settles a UPI payment. The caller-supplied signature must
// match the recomputed HMAC; then the order status is fetched from the
// gateway and only a "paid" status flips the payment flag, using the
// gateway's receipt to locate the internal order.
func (s *Service) VerifyRazorpay(ctx context.Context, userID string, in VerifyRazorpayInput) error {
	if in.RazorpayOrderID == "" || in.RazorpayPaymentID == "" || in.RazorpaySignature == "" {
		return apperr.New(apperr.Validation, "missing payment details")
	}

	if !s.upi.VerifySignature(in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature) {
		s.logger.WithField("razorpay_order_id", in.RazorpayOrderID).Warn("Payment signature mismatch")
		return apperr.New(apperr.SignatureMismatch, "payment verification failed - invalid signature")
	}

	gwOrder, err := s.upi.FetchOrder(ctx, in.RazorpayOrderID)
	if err != nil {
		return err
	}
	if gwOrder.Status != "paid" {
		return apperr.Newf(apperr.Gateway, "payment failed - order status: %s", gwOrder.Status)
	}

	if err := s.store.SetOrderPayment(ctx, gwOrder.Receipt, true); err != nil {
		return err
	}
	if err := s.carts.ClearCart(ctx, userID); err != nil {
		return err
	}

	s.publishPaid(ctx, gwOrder.Receipt)
	s.logger.WithField("order_id", gwOrder.Receipt).Info("Razorpay payment verified")
	return nil
}

// ListAll returns every order, for the admin panel.
func (s *Service) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.store.FindAllOrders(ctx)
}

// ListForUser returns the given user's orders.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.store.FindOrdersByUser(ctx, userID)
}

// UpdateStatus overwrites the fulfillment status. Any of the defined statuses
// may replace any other; no transition ordering is enforced.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) error {
	if !validStatus(status) {
		return apperr.Newf(apperr.Validation, "unknown order status: %s", status)
	}
	if err := s.store.SetOrderStatus(ctx, orderID, status); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderStatus(events.OrderEvent{OrderID: orderID, Status: status}); err != nil {
			s.logger.WithError(err).Error("Failed to publish order status event")
		}
	}
	return nil
}

// Delete hard-deletes an order.
func (s *Service) Delete(ctx context.Context, orderID string) error {
	return s.store.DeleteOrder(ctx, orderID)
}

func validStatus(status string) bool {
	for _, st := range models.OrderStatuses {
		if st == status {
			return true
		}
	}
	return false
}

func (s *Service) publishPlaced(order *models.Order) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishOrderPlaced(events.OrderEvent{
		OrderID:       order.ID.Hex(),
		UserID:        order.UserID,
		Amount:        order.Amount,
		PaymentMethod: order.PaymentMethod,
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to publish order placed event")
	}
}

func (s *Service) publishPaid(ctx context.Context, orderID string) {
	if s.publisher == nil {
		return
	}
	event := events.OrderEvent{OrderID: orderID}
	if order, err := s.store.FindOrderByID(ctx, orderID); err == nil {
		event.UserID = order.UserID
		event.Amount = order.Amount
		event.PaymentMethod = order.PaymentMethod
	}
	if err := s.publisher.PublishOrderPaid(event); err != nil {
		s.logger.WithError(err).Error("Failed to publish order paid event")
	}
}
