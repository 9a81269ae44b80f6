package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

func (s *Store) InsertReview(ctx context.Context, review *models.Review) error {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	_, err := s.db.Collection(reviewsCollection).InsertOne(ctx, review)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.New(apperr.Duplicate, "review already exists")
	}
	return err
}

func (s *Store) UpdateReview(ctx context.Context, review *models.Review) error {
	res, err := s.db.Collection(reviewsCollection).UpdateOne(ctx,
		bson.M{"_id": review.ID},
		bson.M{"$set": bson.M{
			"rating":  review.Rating,
			"comment": review.Comment,
			"date":    review.Date,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "review not found")
	}
	return nil
}

func (s *Store) FindReviewByUserProduct(ctx context.Context, userID, productID string) (*models.Review, error) {
	var review models.Review
	err := s.db.Collection(reviewsCollection).
		FindOne(ctx, bson.M{"userId": userID, "productId": productID}).
		Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "review not found")
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *Store) FindReviewsByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.db.Collection(reviewsCollection).Find(ctx, bson.M{"productId": productID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
