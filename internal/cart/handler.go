package cart

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Sanushoffl/thelivostore/internal/api"
	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/internal/auth"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

type Handler struct {
	service *Service
	logger  *logrus.Logger
}

func NewHandler(service *Service, logger *logrus.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type cartItemRequest struct {
	ItemID   string `json:"itemId"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Add handles POST /api/cart/add.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	if err := h.service.Add(r.Context(), userID, req.ItemID, req.Size); err != nil {
		h.logger.WithError(err).Error("Failed to add to cart")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, messageResponse{Success: true, Message: "Added To Cart"})
}

// Update handles POST /api/cart/update.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	if err := h.service.Update(r.Context(), userID, req.ItemID, req.Size, req.Quantity); err != nil {
		h.logger.WithError(err).Error("Failed to update cart")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, messageResponse{Success: true, Message: "Cart Updated"})
}

type cartResponse struct {
	Success  bool        `json:"success"`
	CartData models.Cart `json:"cartData"`
}

// Get handles POST /api/cart/get.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	cartData, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load cart")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, cartResponse{Success: true, CartData: cartData})
}
