// Package subcategories manages the flat, uniquely named catalog groupings.
package subcategories

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

// Store is the slice of persistence the subcategory service needs.
type Store interface {
	InsertSubCategory(ctx context.Context, sub *models.SubCategory) error
	FindSubCategoryByName(ctx context.Context, name string) (*models.SubCategory, error)
	FindAllSubCategories(ctx context.Context) ([]models.SubCategory, error)
	UpdateSubCategoryName(ctx context.Context, id, name string) error
	DeleteSubCategory(ctx context.Context, id string) error
}

type Service struct {
	store  Store
	logger *logrus.Logger
}

func NewService(store Store, logger *logrus.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Add creates a subcategory. Names are trimmed before the uniqueness check
// so "Hats" and " Hats " collide.
func (s *Service) Add(ctx context.Context, name string) (*models.SubCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.Validation, "subcategory name is required")
	}

	if _, err := s.store.FindSubCategoryByName(ctx, name); err == nil {
		return nil, apperr.New(apperr.Duplicate, "subcategory already exists")
	} else if !apperr.IsKind(err, apperr.NotFound) {
		return nil, err
	}

	sub := &models.SubCategory{Name: name, Date: time.Now()}
	if err := s.store.InsertSubCategory(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.WithField("name", name).Info("Subcategory added")
	return sub, nil
}

// List returns all subcategories, newest first.
func (s *Service) List(ctx context.Context) ([]models.SubCategory, error) {
	return s.store.FindAllSubCategories(ctx)
}

// Rename changes a subcategory's name, keeping the trimmed-unique rule.
func (s *Service) Rename(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.New(apperr.Validation, "subcategory name is required")
	}

	if existing, err := s.store.FindSubCategoryByName(ctx, name); err == nil {
		if existing.ID.Hex() != id {
			return apperr.New(apperr.Duplicate, "subcategory already exists")
		}
	} else if !apperr.IsKind(err, apperr.NotFound) {
		return err
	}

	return s.store.UpdateSubCategoryName(ctx, id, name)
}

// Remove deletes a subcategory. Products keep whatever subcategory string
// they were stored with; there is no referential cleanup.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.store.DeleteSubCategory(ctx, id)
}
