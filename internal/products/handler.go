package products

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Sanushoffl/thelivostore/internal/api"
	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

// maxProductUpload bounds the multipart form held in memory while parsing.
const maxProductUpload = 32 << 20

// imageFields are the file field names the admin panel uses, up to four
// images per product.
var imageFields = []string{"image1", "image2", "image3", "image4"}

type Handler struct {
	service *Service
	logger  *logrus.Logger
}

func NewHandler(service *Service, logger *logrus.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Add handles POST /api/product/add (admin, multipart form).
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxProductUpload); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid form data"))
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "price must be a number"))
		return
	}

	in := AddInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Category:    r.FormValue("category"),
		SubCategory: r.FormValue("subCategory"),
		SizesJSON:   r.FormValue("sizes"),
		Bestseller:  r.FormValue("bestseller") == "true",
	}
	for _, field := range imageFields {
		file, header, err := r.FormFile(field)
		if err != nil {
			continue
		}
		defer file.Close()
		in.Images = append(in.Images, ImageUpload{Name: header.Filename, Reader: file})
	}

	if _, err := h.service.Add(r.Context(), in); err != nil {
		h.logger.WithError(err).Error("Failed to add product")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, messageResponse{Success: true, Message: "Product Added"})
}

type listResponse struct {
	Success  bool             `json:"success"`
	Products []models.Product `json:"products"`
}

// List handles GET /api/product/list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list products")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, listResponse{Success: true, Products: products})
}

type singleRequest struct {
	ProductID string `json:"productId"`
}

type singleResponse struct {
	Success bool            `json:"success"`
	Product *models.Product `json:"product"`
}

// Single handles POST /api/product/single.
func (h *Handler) Single(w http.ResponseWriter, r *http.Request) {
	var req singleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	product, err := h.service.Get(r.Context(), req.ProductID)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load product")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, singleResponse{Success: true, Product: product})
}

type removeRequest struct {
	ID string `json:"id"`
}

// Remove handles POST /api/product/remove (admin).
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	var req removeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	if err := h.service.Remove(r.Context(), req.ID); err != nil {
		h.logger.WithError(err).Warn("Failed to remove product")
		api.RespondError(w, err)
		return
	}
	api.RespondJSON(w, messageResponse{Success: true, Message: "Product Removed"})
}
