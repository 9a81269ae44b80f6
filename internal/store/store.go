// Package store is the document persistence layer. Each entity gets its own
// collection; the store relies on single-document atomicity only and performs
// no multi-document transactions.
package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection         = "users"
	ordersCollection        = "orders"
	reviewsCollection       = "reviews"
	subCategoriesCollection = "subcategories"
	productsCollection      = "products"
)

type Store struct {
	db     *mongo.Database
	logger *logrus.Logger
}

// Connect dials the document store and pings it before returning.
func Connect(ctx context.Context, uri, dbName string, logger *logrus.Logger) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, err
	}

	logger.WithField("database", dbName).Info("Database connection established")
	return &Store{db: client.Database(dbName), logger: logger}, nil
}

// EnsureIndexes creates the uniqueness indexes the data model depends on:
// user email, subcategory name, and one review per (user, product).
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = s.db.Collection(subCategoriesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = s.db.Collection(reviewsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Disconnect closes the underlying client.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}
