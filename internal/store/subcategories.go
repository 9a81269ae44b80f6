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

func (s *Store) InsertSubCategory(ctx context.Context, sub *models.SubCategory) error {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	_, err := s.db.Collection(subCategoriesCollection).InsertOne(ctx, sub)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.New(apperr.Duplicate, "subcategory already exists")
	}
	return err
}

func (s *Store) FindSubCategoryByName(ctx context.Context, name string) (*models.SubCategory, error) {
	var sub models.SubCategory
	err := s.db.Collection(subCategoriesCollection).FindOne(ctx, bson.M{"name": name}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "subcategory not found")
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Store) FindAllSubCategories(ctx context.Context) ([]models.SubCategory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.db.Collection(subCategoriesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []models.SubCategory
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *Store) UpdateSubCategoryName(ctx context.Context, id, name string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid subcategory id")
	}

	res, err := s.db.Collection(subCategoriesCollection).UpdateOne(ctx,
		bson.M{"_id": oid}, bson.M{"$set": bson.M{"name": name}})
	if mongo.IsDuplicateKeyError(err) {
		return apperr.New(apperr.Duplicate, "subcategory name already exists")
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "subcategory not found")
	}
	return nil
}

func (s *Store) DeleteSubCategory(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid subcategory id")
	}

	res, err := s.db.Collection(subCategoriesCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "subcategory not found")
	}
	return nil
}
