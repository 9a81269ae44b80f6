package subcategories

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Sanushoffl/thelivostore/internal/api"
	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

type Handler struct {
	service *Service
	logger  *logrus.Logger
}

func NewHandler(service *Service, logger *logrus.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type addRequest struct {
	Name string `json:"name"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Add handles POST /api/subcategory/add (admin).
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	if _, err := h.service.Add(r.Context(), req.Name); err != nil {
		h.logger.WithError(err).Warn("Failed to add subcategory")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, messageResponse{Success: true, Message: "Subcategory Added"})
}

type listResponse struct {
	Success       bool                 `json:"success"`
	SubCategories []models.SubCategory `json:"subCategories"`
}

// List handles GET /api/subcategory/list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list subcategories")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, listResponse{Success: true, SubCategories: subs})
}

type renameRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Rename handles POST /api/subcategory/update (admin).
func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	if err := h.service.Rename(r.Context(), req.ID, req.Name); err != nil {
		h.logger.WithError(err).Warn("Failed to rename subcategory")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, messageResponse{Success: true, Message: "Subcategory Updated"})
}

type removeRequest struct {
	ID string `json:"id"`
}

// Remove handles POST /api/subcategory/remove (admin).
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	var req removeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	if err := h.service.Remove(r.Context(), req.ID); err != nil {
		h.logger.WithError(err).Warn("Failed to remove subcategory")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, messageResponse{Success: true, Message: "Subcategory Removed"})
}
