package orders

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/internal/gateway"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

type fakeOrderStore struct {
	orders map[string]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderStore) InsertOrder(_ context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	cp := *order
	f.orders[order.ID.Hex()] = &cp
	return nil
}

func (f *fakeOrderStore) FindOrderByID(_ context.Context, id string) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	cp := *order
	return &cp, nil
}

func (f *fakeOrderStore) FindAllOrders(_ context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderStore) FindOrdersByUser(_ context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) SetOrderPayment(_ context.Context, id string, paid bool) error {
	order, ok := f.orders[id]
	if !ok {
		return apperr.New(apperr.NotFound, "order not found")
	}
	order.Payment = paid
	return nil
}

func (f *fakeOrderStore) SetOrderStatus(_ context.Context, id, status string) error {
	order, ok := f.orders[id]
	if !ok {
		return apperr.New(apperr.NotFound, "order not found")
	}
	order.Status = status
	return nil
}

func (f *fakeOrderStore) DeleteOrder(_ context.Context, id string) error {
	if _, ok := f.orders[id]; !ok {
		return apperr.New(apperr.NotFound, "order not found")
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderStore) only(t *testing.T) *models.Order {
	t.Helper()
	require.Len(t, f.orders, 1)
	for _, o := range f.orders {
		return o
	}
	return nil
}

type fakeCarts struct {
	cleared []string
}

func (f *fakeCarts) ClearCart(_ context.Context, userID string) error {
	f.cleared = append(f.cleared, userID)
	return nil
}

type fakeCardGateway struct {
	lastOrder *models.Order
	origin    string
}

func (f *fakeCardGateway) CreateCheckoutSession(_ context.Context, ord *models.Order, origin string) (string, error) {
	f.lastOrder = ord
	f.origin = origin
	return "https://checkout.example.com/s/" + ord.ID.Hex(), nil
}

type fakeUPIGateway struct {
	secret      string
	created     []*gateway.Order
	fetchStatus string
	fetchOrder  *gateway.Order
}

func (f *fakeUPIGateway) CreateOrder(_ context.Context, amountPaise int64, currency, receipt string) (*gateway.Order, error) {
	ord := &gateway.Order{
		ID:       "order_gw_" + receipt[:6],
		Amount:   amountPaise,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}
	f.created = append(f.created, ord)
	return ord, nil
}

func (f *fakeUPIGateway) FetchOrder(_ context.Context, orderID string) (*gateway.Order, error) {
	if f.fetchOrder != nil {
		return f.fetchOrder, nil
	}
	return &gateway.Order{ID: orderID, Status: f.fetchStatus}, nil
}

func (f *fakeUPIGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return gateway.VerifyRazorpaySignature(orderID, paymentID, signature, f.secret)
}

func testService(store *fakeOrderStore, carts *fakeCarts, card *fakeCardGateway, upi *fakeUPIGateway) *Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(store, carts, card, upi, nil, "inr", logger)
}

func validInput() PlaceOrderInput {
	return PlaceOrderInput{
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Shirt", Price: 20, Quantity: 2, Size: "M"},
			{ProductID: "p2", Name: "Cap", Price: 15, Quantity: 1},
		},
		Amount: 65, // 20*2 + 15*1 + 10 delivery
		Address: models.Address{
			FirstName: "Ada", Street: "1 Main St", City: "Pune",
			State: "MH", Zipcode: "411001", Country: "IN", Phone: "555",
		},
	}
}

func TestPlaceOrderAmountIncludesDeliveryCharge(t *testing.T) {
	store := newFakeOrderStore()
	carts := &fakeCarts{}
	svc := testService(store, carts, &fakeCardGateway{}, &fakeUPIGateway{})

	order, err := svc.PlaceOrder(context.Background(), "user1", validInput())
	require.NoError(t, err)

	// 20*2 + 15*1 + 10 delivery
	assert.Equal(t, 65.0, order.Amount)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	assert.False(t, order.Payment)
	assert.Equal(t, models.StatusPlaced, order.Status)

	stored := store.only(t)
	assert.Equal(t, 65.0, stored.Amount)
	assert.Equal(t, []string{"user1"}, carts.cleared, "COD clears the cart at creation time")
}

func TestPlaceOrderRejectsMismatchedAmount(t *testing.T) {
	svc := testService(newFakeOrderStore(), &fakeCarts{}, &fakeCardGateway{}, &fakeUPIGateway{})

	in := validInput()
	in.Amount = 60 // correct total is 65

	_, err := svc.PlaceOrder(context.Background(), "user1", in)
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestPlaceOrderValidation(t *testing.T) {
	svc := testService(newFakeOrderStore(), &fakeCarts{}, &fakeCardGateway{}, &fakeUPIGateway{})

	noItems := validInput()
	noItems.Items = nil
	_, err := svc.PlaceOrder(context.Background(), "user1", noItems)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	noAddress := validInput()
	noAddress.Address = models.Address{}
	_, err = svc.PlaceOrder(context.Background(), "user1", noAddress)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	badItem := validInput()
	badItem.Items[0].Quantity = 0
	_, err = svc.PlaceOrder(context.Background(), "user1", badItem)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	noAmount := validInput()
	noAmount.Amount = 0
	_, err = svc.PlaceOrder(context.Background(), "user1", noAmount)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestPlaceOrderStripeLeavesCartUntouched(t *testing.T) {
	store := newFakeOrderStore()
	carts := &fakeCarts{}
	card := &fakeCardGateway{}
	svc := testService(store, carts, card, &fakeUPIGateway{})

	order, sessionURL, err := svc.PlaceOrderStripe(context.Background(), "user1", validInput(), "https://shop.example.com")
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.example.com/s/"+order.ID.Hex(), sessionURL)
	assert.Equal(t, "https://shop.example.com", card.origin)
	assert.Empty(t, carts.cleared, "gateway methods clear the cart only after confirmed payment")
	assert.False(t, store.only(t).Payment)
}

func TestVerifyStripeSuccessMarksPaidAndClearsCart(t *testing.T) {
	store := newFakeOrderStore()
	carts := &fakeCarts{}
	svc := testService(store, carts, &fakeCardGateway{}, &fakeUPIGateway{})

	order, _, err := svc.PlaceOrderStripe(context.Background(), "user1", validInput(), "https://shop.example.com")
	require.NoError(t, err)

	paid, err := svc.VerifyStripe(context.Background(), "user1", order.ID.Hex(), true)
	require.NoError(t, err)
	assert.True(t, paid)
	assert.True(t, store.only(t).Payment)
	assert.Equal(t, []string{"user1"}, carts.cleared)
}

func TestVerifyStripeFailureDeletesOrder(t *testing.T) {
	store := newFakeOrderStore()
	carts := &fakeCarts{}
	svc := testService(store, carts, &fakeCardGateway{}, &fakeUPIGateway{})

	order, _, err := svc.PlaceOrderStripe(context.Background(), "user1", validInput(), "https://shop.example.com")
	require.NoError(t, err)

	paid, err := svc.VerifyStripe(context.Background(), "user1", order.ID.Hex(), false)
	require.NoError(t, err)
	assert.False(t, paid)
	assert.Empty(t, store.orders, "cancelled payment hard-deletes the order")
	assert.Empty(t, carts.cleared)
}

func TestPlaceOrderRazorpayCreatesGatewayOrder(t *testing.T) {
	store := newFakeOrderStore()
	upi := &fakeUPIGateway{secret: "s3cret"}
	svc := testService(store, &fakeCarts{}, &fakeCardGateway{}, upi)

	gwOrder, err := svc.PlaceOrderRazorpay(context.Background(), "user1", validInput())
	require.NoError(t, err)

	internal := store.only(t)
	assert.Equal(t, internal.ID.Hex(), gwOrder.Receipt, "receipt must back-reference the internal order")
	assert.Equal(t, int64(6500), gwOrder.Amount, "amount forwarded in paise")
	assert.Equal(t, "INR", gwOrder.Currency)
	assert.Equal(t, models.PaymentMethodRazorpay, internal.PaymentMethod)
	assert.False(t, internal.Payment)
}

func TestVerifyRazorpayRejectsBadSignature(t *testing.T) {
	store := newFakeOrderStore()
	upi := &fakeUPIGateway{secret: "s3cret"}
	svc := testService(store, &fakeCarts{}, &fakeCardGateway{}, upi)

	err := svc.VerifyRazorpay(context.Background(), "user1", VerifyRazorpayInput{
		RazorpayOrderID:   "order_gw_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "not-a-valid-signature",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.SignatureMismatch, apperr.KindOf(err))
}

func TestVerifyRazorpayRejectsMissingFields(t *testing.T) {
	svc := testService(newFakeOrderStore(), &fakeCarts{}, &fakeCardGateway{}, &fakeUPIGateway{})

	err := svc.VerifyRazorpay(context.Background(), "user1", VerifyRazorpayInput{})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestVerifyRazorpayRequiresPaidStatus(t *testing.T) {
	store := newFakeOrderStore()
	carts := &fakeCarts{}
	upi := &fakeUPIGateway{secret: "s3cret"}
	svc := testService(store, carts, &fakeCardGateway{}, upi)

	_, err := svc.PlaceOrderRazorpay(context.Background(), "user1", validInput())
	require.NoError(t, err)
	internal := store.only(t)

	sig := signFor(t, "order_gw_1", "pay_1", "s3cret")
	upi.fetchOrder = &gateway.Order{ID: "order_gw_1", Receipt: internal.ID.Hex(), Status: "attempted"}

	err = svc.VerifyRazorpay(context.Background(), "user1", VerifyRazorpayInput{
		RazorpayOrderID:   "order_gw_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: sig,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Gateway, apperr.KindOf(err))
	assert.False(t, store.only(t).Payment)
	assert.Empty(t, carts.cleared)
}

func TestVerifyRazorpayMarksPaidViaReceipt(t *testing.T) {
	store := newFakeOrderStore()
	carts := &fakeCarts{}
	upi := &fakeUPIGateway{secret: "s3cret"}
	svc := testService(store, carts, &fakeCardGateway{}, upi)

	_, err := svc.PlaceOrderRazorpay(context.Background(), "user1", validInput())
	require.NoError(t, err)
	internal := store.only(t)

	sig := signFor(t, "order_gw_1", "pay_1", "s3cret")
	upi.fetchOrder = &gateway.Order{ID: "order_gw_1", Receipt: internal.ID.Hex(), Status: "paid"}

	err = svc.VerifyRazorpay(context.Background(), "user1", VerifyRazorpayInput{
		RazorpayOrderID:   "order_gw_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: sig,
	})
	require.NoError(t, err)
	assert.True(t, store.only(t).Payment, "payment flag flips from the gateway's receipt back-reference")
	assert.Equal(t, []string{"user1"}, carts.cleared)
}

func TestUpdateStatusAcceptsAnyDefinedStatus(t *testing.T) {
	store := newFakeOrderStore()
	svc := testService(store, &fakeCarts{}, &fakeCardGateway{}, &fakeUPIGateway{})

	order, err := svc.PlaceOrder(context.Background(), "user1", validInput())
	require.NoError(t, err)
	id := order.ID.Hex()

	// Every defined status is writable over every other: there is no
	// transition validation, and that includes moving backwards.
	sequence := []string{
		models.StatusDelivered,
		models.StatusPlaced,
		models.StatusOutForDelivery,
		models.StatusPacking,
		models.StatusShipped,
	}
	for _, status := range sequence {
		require.NoError(t, svc.UpdateStatus(context.Background(), id, status))
		assert.Equal(t, status, store.orders[id].Status)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	store := newFakeOrderStore()
	svc := testService(store, &fakeCarts{}, &fakeCardGateway{}, &fakeUPIGateway{})

	order, err := svc.PlaceOrder(context.Background(), "user1", validInput())
	require.NoError(t, err)

	err = svc.UpdateStatus(context.Background(), order.ID.Hex(), "Teleported")
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestDeleteOrderRemovesFromUserListing(t *testing.T) {
	store := newFakeOrderStore()
	svc := testService(store, &fakeCarts{}, &fakeCardGateway{}, &fakeUPIGateway{})

	order, err := svc.PlaceOrder(context.Background(), "user1", validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), order.ID.Hex()))

	listed, err := svc.ListForUser(context.Background(), "user1")
	require.NoError(t, err)
	assert.Empty(t, listed)

	err = svc.Delete(context.Background(), order.ID.Hex())
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

// signFor produces the signature the gateway would have computed, so the
// fake's delegation to the real HMAC check passes.
func signFor(t *testing.T, orderID, paymentID, secret string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
