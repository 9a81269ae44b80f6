package reviews

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

type submitRequest struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type submitResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Review  *models.Review `json:"review"`
}

// Submit handles POST /api/review/add.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	review, replaced, err := h.service.Submit(r.Context(), userID, SubmitInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		h.logger.WithError(err).Warn("Review submission failed")
		api.RespondError(w, err)
		return
	}

	message := "Review Added"
	if replaced {
		message = "Review Updated"
	}
	api.RespondJSON(w, submitResponse{Success: true, Message: message, Review: review})
}

type listRequest struct {
	ProductID string `json:"productId"`
}

type listResponse struct {
	Success bool            `json:"success"`
	Reviews []models.Review `json:"reviews"`
}

// ListForProduct handles POST /api/review/get.
func (h *Handler) ListForProduct(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	reviews, err := h.service.ListForProduct(r.Context(), req.ProductID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list reviews")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, listResponse{Success: true, Reviews: reviews})
}
