// Package cart manages the per-user cart stored on the user document as a
// product -> size -> quantity map.
package cart

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

// Store reads and writes the cart map on the user document.
type Store interface {
	CartData(ctx context.Context, userID string) (models.Cart, error)
	SetCartData(ctx context.Context, userID string, cart models.Cart) error
}

type Service struct {
	store  Store
	logger *logrus.Logger
}

func NewService(store Store, logger *logrus.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Add increments the quantity for the item and size by one, creating the
// entry when absent.
func (s *Service) Add(ctx context.Context, userID, itemID, size string) error {
	if itemID == "" || size == "" {
		return apperr.New(apperr.Validation, "item id and size are required")
	}

	cart, err := s.store.CartData(ctx, userID)
	if err != nil {
		return err
	}
	if cart[itemID] == nil {
		cart[itemID] = make(map[string]int)
	}
	cart[itemID][size]++

	return s.store.SetCartData(ctx, userID, cart)
}

// Update sets the quantity for the item and size. A quantity of zero removes
// the entry; the item key is dropped once its last size goes.
func (s *Service) Update(ctx context.Context, userID, itemID, size string, quantity int) error {
	if itemID == "" || size == "" {
		return apperr.New(apperr.Validation, "item id and size are required")
	}
	if quantity < 0 {
		return apperr.New(apperr.Validation, "quantity cannot be negative")
	}

	cart, err := s.store.CartData(ctx, userID)
	if err != nil {
		return err
	}

	if quantity == 0 {
		if sizes, ok := cart[itemID]; ok {
			delete(sizes, size)
			if len(sizes) == 0 {
				delete(cart, itemID)
			}
		}
	} else {
		if cart[itemID] == nil {
			cart[itemID] = make(map[string]int)
		}
		cart[itemID][size] = quantity
	}

	return s.store.SetCartData(ctx, userID, cart)
}

// Get returns the user's current cart.
func (s *Service) Get(ctx context.Context, userID string) (models.Cart, error) {
	return s.store.CartData(ctx, userID)
}
