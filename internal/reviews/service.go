// Package reviews handles product reviews. A user gets one review per
// product; submitting again replaces the rating and comment.
package reviews

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

// ReviewStore is the slice of persistence the review service needs.
type ReviewStore interface {
	InsertReview(ctx context.Context, review *models.Review) error
	UpdateReview(ctx context.Context, review *models.Review) error
	FindReviewByUserProduct(ctx context.Context, userID, productID string) (*models.Review, error)
	FindReviewsByProduct(ctx context.Context, productID string) ([]models.Review, error)
}

// UserSource resolves the reviewer so their name and email can be embedded
// in the review document.
type UserSource interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

type Service struct {
	store  ReviewStore
	users  UserSource
	logger *logrus.Logger
}

func NewService(store ReviewStore, users UserSource, logger *logrus.Logger) *Service {
	return &Service{store: store, users: users, logger: logger}
}

// SubmitInput is a review submission.
type SubmitInput struct {
	ProductID string
	Rating    int
	Comment   string
}

// Submit creates the user's review for a product, or overwrites the existing
// one. Returns the stored review and whether it replaced a previous one.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (*models.Review, bool, error) {
	if in.ProductID == "" {
		return nil, false, apperr.New(apperr.Validation, "product id is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, false, apperr.New(apperr.Validation, "rating must be between 1 and 5")
	}
	if strings.TrimSpace(in.Comment) == "" {
		return nil, false, apperr.New(apperr.Validation, "comment is required")
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.store.FindReviewByUserProduct(ctx, userID, in.ProductID)
	if err != nil && !apperr.IsKind(err, apperr.NotFound) {
		return nil, false, err
	}

	if existing != nil {
		existing.Rating = in.Rating
		existing.Comment = in.Comment
		existing.Date = time.Now()
		if err := s.store.UpdateReview(ctx, existing); err != nil {
			return nil, false, err
		}
		s.logger.WithFields(logrus.Fields{
			"user_id":    userID,
			"product_id": in.ProductID,
		}).Info("Review updated")
		return existing, true, nil
	}

	review := &models.Review{
		ProductID: in.ProductID,
		UserID:    userID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Date:      time.Now(),
	}
	if err := s.store.InsertReview(ctx, review); err != nil {
		return nil, false, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"product_id": in.ProductID,
	}).Info("Review added")
	return review, false, nil
}

// ListForProduct returns a product's reviews, newest first.
func (s *Service) ListForProduct(ctx context.Context, productID string) ([]models.Review, error) {
	if productID == "" {
		return nil, apperr.New(apperr.Validation, "product id is required")
	}
	return s.store.FindReviewsByProduct(ctx, productID)
}
