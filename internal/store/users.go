package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

func (s *Store) InsertUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CartData == nil {
		user.CartData = models.Cart{}
	}
	_, err := s.db.Collection(usersCollection).InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.New(apperr.Duplicate, "user already exists")
	}
	return err
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid user id")
	}

	var user models.User
	err = s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserFields applies a partial update to a user document.
func (s *Store) UpdateUserFields(ctx context.Context, id string, fields map[string]interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid user id")
	}

	res, err := s.db.Collection(usersCollection).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)})
	if mongo.IsDuplicateKeyError(err) {
		return apperr.New(apperr.Duplicate, "email already in use")
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "user not found")
	}
	return nil
}

func (s *Store) CartData(ctx context.Context, userID string) (models.Cart, error) {
	user, err := s.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CartData == nil {
		return models.Cart{}, nil
	}
	return user.CartData, nil
}

func (s *Store) SetCartData(ctx context.Context, userID string, cart models.Cart) error {
	return s.UpdateUserFields(ctx, userID, map[string]interface{}{"cartData": cart})
}

// ClearCart resets the user's cart to empty. This is an independent
// single-document write; it is not coupled to the order write it usually
// follows.
func (s *Store) ClearCart(ctx context.Context, userID string) error {
	return s.SetCartData(ctx, userID, models.Cart{})
}
