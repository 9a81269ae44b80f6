package orders

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Sanushoffl/thelivostore/internal/analytics"
	"github.com/Sanushoffl/thelivostore/internal/api"
	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/internal/auth"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

// LiveFeed receives order events for the admin dashboard; nil disables it.
type LiveFeed interface {
	Broadcast(messageType string, data interface{})
}

type Handler struct {
	service   *Service
	analytics *analytics.Service
	feed      LiveFeed
	logger    *logrus.Logger
}

func NewHandler(service *Service, analyticsService *analytics.Service, logger *logrus.Logger) *Handler {
	return &Handler{
		service:   service,
		analytics: analyticsService,
		logger:    logger,
	}
}

// SetLiveFeed attaches the admin websocket feed.
func (h *Handler) SetLiveFeed(feed LiveFeed) {
	h.feed = feed
}

type placeOrderRequest struct {
	Items   []models.OrderItem `json:"items"`
	Amount  float64            `json:"amount"`
	Address models.Address     `json:"address"`
}

func (r placeOrderRequest) input() PlaceOrderInput {
	return PlaceOrderInput{Items: r.Items, Amount: r.Amount, Address: r.Address}
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PlaceOrder handles POST /api/order/place (cash on delivery).
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), userID, req.input())
	if err != nil {
		h.logger.WithError(err).Error("Failed to place order")
		api.RespondError(w, err)
		return
	}

	h.broadcast("order_placed", order)
	api.RespondJSON(w, messageResponse{Success: true, Message: "Order Placed"})
}

type stripeSessionResponse struct {
	Success    bool   `json:"success"`
	SessionURL string `json:"session_url"`
}

// PlaceOrderStripe handles POST /api/order/stripe.
func (h *Handler) PlaceOrderStripe(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	order, sessionURL, err := h.service.PlaceOrderStripe(r.Context(), userID, req.input(), r.Header.Get("Origin"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to start card checkout")
		api.RespondError(w, err)
		return
	}

	h.broadcast("order_placed", order)
	api.RespondJSON(w, stripeSessionResponse{Success: true, SessionURL: sessionURL})
}

type verifyStripeRequest struct {
	OrderID string `json:"orderId"`
	Success string `json:"success"`
}

// VerifyStripe handles POST /api/order/verifyStripe. The success field is the
// string the redirect callback carries.
func (h *Handler) VerifyStripe(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req verifyStripeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	paid, err := h.service.VerifyStripe(r.Context(), userID, req.OrderID, req.Success == "true")
	if err != nil {
		h.logger.WithError(err).Error("Failed to verify card payment")
		api.RespondError(w, err)
		return
	}
	if !paid {
		api.RespondJSON(w, messageResponse{Success: false, Message: "Payment cancelled"})
		return
	}

	h.broadcast("order_paid", req.OrderID)
	api.RespondJSON(w, messageResponse{Success: true, Message: "Payment Successful"})
}

type razorpayOrderResponse struct {
	Success bool          `json:"success"`
	Order   razorpayOrder `json:"order"`
}

type razorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// PlaceOrderRazorpay handles POST /api/order/razorpay.
func (h *Handler) PlaceOrderRazorpay(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	gwOrder, err := h.service.PlaceOrderRazorpay(r.Context(), userID, req.input())
	if err != nil {
		h.logger.WithError(err).Error("Failed to create razorpay order")
		api.RespondError(w, err)
		return
	}

	h.broadcast("order_placed", gwOrder.Receipt)
	api.RespondJSON(w, razorpayOrderResponse{
		Success: true,
		Order: razorpayOrder{
			ID:       gwOrder.ID,
			Amount:   gwOrder.Amount,
			Currency: gwOrder.Currency,
			Receipt:  gwOrder.Receipt,
		},
	})
}

type verifyRazorpayRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// VerifyRazorpay handles POST /api/order/verifyRazorpay.
func (h *Handler) VerifyRazorpay(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req verifyRazorpayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	err := h.service.VerifyRazorpay(r.Context(), userID, VerifyRazorpayInput{
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to verify razorpay payment")
		api.RespondError(w, err)
		return
	}

	h.broadcast("order_paid", req.RazorpayOrderID)
	api.RespondJSON(w, messageResponse{Success: true, Message: "Payment Successful"})
}

type ordersResponse struct {
	Success bool           `json:"success"`
	Orders  []models.Order `json:"orders"`
}

// ListAll handles POST /api/order/list (admin).
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list orders")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, ordersResponse{Success: true, Orders: orders})
}

// ListForUser handles POST /api/order/userorders.
func (h *Handler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	orders, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list user orders")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, ordersResponse{Success: true, Orders: orders})
}

type updateStatusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// UpdateStatus handles POST /api/order/status (admin).
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	if err := h.service.UpdateStatus(r.Context(), req.OrderID, req.Status); err != nil {
		h.logger.WithError(err).Error("Failed to update order status")
		api.RespondError(w, err)
		return
	}

	h.broadcast("order_status", req)
	api.RespondJSON(w, messageResponse{Success: true, Message: "Status Updated"})
}

type deleteOrderRequest struct {
	OrderID string `json:"orderId"`
}

// Delete handles POST /api/order/delete (admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	if err := h.service.Delete(r.Context(), req.OrderID); err != nil {
		h.logger.WithError(err).Error("Failed to delete order")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, messageResponse{Success: true, Message: "Order Deleted"})
}

type salesAnalyticsResponse struct {
	Success      bool                     `json:"success"`
	TotalSales   float64                  `json:"totalSales"`
	TotalOrders  int                      `json:"totalOrders"`
	ProductSales []analytics.ProductSales `json:"productSales"`
}

// SalesAnalytics handles POST /api/order/sales-analytics (admin).
func (h *Handler) SalesAnalytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analytics.ComputeSalesSummary(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute sales summary")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, salesAnalyticsResponse{
		Success:      true,
		TotalSales:   summary.TotalSales,
		TotalOrders:  summary.TotalOrders,
		ProductSales: summary.ProductSales,
	})
}

func (h *Handler) broadcast(messageType string, data interface{}) {
	if h.feed != nil {
		h.feed.Broadcast(messageType, data)
	}
}
