// Package products manages the catalog: admin add/remove and the public
// listings. Product images are normalized and pushed to external storage at
// add time; only the returned URIs are persisted.
package products

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/internal/images"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

// Store is the slice of persistence the product service needs.
type Store interface {
	InsertProduct(ctx context.Context, product *models.Product) error
	FindAllProducts(ctx context.Context) ([]models.Product, error)
	FindProductByID(ctx context.Context, id string) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type Service struct {
	store    Store
	uploader images.Uploader
	logger   *logrus.Logger
}

func NewService(store Store, uploader images.Uploader, logger *logrus.Logger) *Service {
	return &Service{store: store, uploader: uploader, logger: logger}
}

// ImageUpload is one uploaded product image.
type ImageUpload struct {
	Name   string
	Reader io.Reader
}

// AddInput is an admin product submission. Sizes arrives as a JSON-encoded
// string array, matching the multipart form the admin panel sends.
type AddInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	SubCategory string
	SizesJSON   string
	Bestseller  bool
	Images      []ImageUpload
}

// Add validates the submission, uploads each image through the storage
// client, and persists the product.
func (s *Service) Add(ctx context.Context, in AddInput) (*models.Product, error) {
	if in.Name == "" || in.Description == "" || in.Category == "" {
		return nil, apperr.New(apperr.Validation, "name, description and category are required")
	}
	if in.Price <= 0 {
		return nil, apperr.New(apperr.Validation, "price must be positive")
	}

	var sizes []string
	if in.SizesJSON != "" {
		if err := json.Unmarshal([]byte(in.SizesJSON), &sizes); err != nil {
			return nil, apperr.New(apperr.Validation, "sizes must be a JSON string array")
		}
	}

	if len(in.Images) > 0 && s.uploader == nil {
		return nil, apperr.New(apperr.Validation, "product image uploads are not enabled")
	}

	var urls []string
	for _, upload := range in.Images {
		normalized, err := images.Normalize(upload.Reader)
		if err != nil {
			return nil, err
		}
		url, err := s.uploader.Upload(ctx, upload.Name, normalized)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Images:      urls,
		Category:    in.Category,
		SubCategory: in.SubCategory,
		Sizes:       sizes,
		Bestseller:  in.Bestseller,
		Date:        time.Now(),
	}
	if err := s.store.InsertProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": product.ID.Hex(),
		"name":       product.Name,
		"images":     len(urls),
	}).Info("Product added")
	return product, nil
}

// List returns the full catalog, newest first.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	return s.store.FindAllProducts(ctx)
}

// Get returns a single product.
func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	if id == "" {
		return nil, apperr.New(apperr.Validation, "product id is required")
	}
	return s.store.FindProductByID(ctx, id)
}

// Remove deletes a product. Stored images are left behind in the external
// storage service.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.store.DeleteProduct(ctx, id)
}
