package reviews

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
	"github.com/Sanushoffl/thelivostore/pkg/models"
)

type fakeReviewStore struct {
	reviews map[string]*models.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: make(map[string]*models.Review)}
}

func (f *fakeReviewStore) key(userID, productID string) string {
	return userID + "/" + productID
}

func (f *fakeReviewStore) InsertReview(_ context.Context, review *models.Review) error {
	k := f.key(review.UserID, review.ProductID)
	if _, ok := f.reviews[k]; ok {
		return apperr.New(apperr.Duplicate, "review already exists")
	}
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	cp := *review
	f.reviews[k] = &cp
	return nil
}

func (f *fakeReviewStore) UpdateReview(_ context.Context, review *models.Review) error {
	for _, existing := range f.reviews {
		if existing.ID == review.ID {
			existing.Rating = review.Rating
			existing.Comment = review.Comment
			existing.Date = review.Date
			return nil
		}
	}
	return apperr.New(apperr.NotFound, "review not found")
}

func (f *fakeReviewStore) FindReviewByUserProduct(_ context.Context, userID, productID string) (*models.Review, error) {
	if review, ok := f.reviews[f.key(userID, productID)]; ok {
		cp := *review
		return &cp, nil
	}
	return nil, apperr.New(apperr.NotFound, "review not found")
}

func (f *fakeReviewStore) FindReviewsByProduct(_ context.Context, productID string) ([]models.Review, error) {
	var out []models.Review
	for _, review := range f.reviews {
		if review.ProductID == productID {
			out = append(out, *review)
		}
	}
	return out, nil
}

type fakeUsers map[string]*models.User

func (f fakeUsers) FindUserByID(_ context.Context, id string) (*models.User, error) {
	if user, ok := f[id]; ok {
		return user, nil
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

func testReviews() (*Service, *fakeReviewStore) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	store := newFakeReviewStore()
	users := fakeUsers{"user1": {Name: "Ada", Email: "ada@example.com"}}
	return NewService(store, users, logger), store
}

func TestSubmitEmbedsReviewerSnapshot(t *testing.T) {
	svc, _ := testReviews()

	review, replaced, err := svc.Submit(context.Background(), "user1", SubmitInput{
		ProductID: "p1",
		Rating:    4,
		Comment:   "Fits well",
	})
	require.NoError(t, err)
	assert.False(t, replaced)
	assert.Equal(t, "Ada", review.UserName)
	assert.Equal(t, "ada@example.com", review.UserEmail)
	assert.False(t, review.Date.IsZero())
}

func TestSubmitSecondTimeReplaces(t *testing.T) {
	svc, store := testReviews()
	ctx := context.Background()

	first, _, err := svc.Submit(ctx, "user1", SubmitInput{ProductID: "p1", Rating: 2, Comment: "Meh"})
	require.NoError(t, err)

	second, replaced, err := svc.Submit(ctx, "user1", SubmitInput{ProductID: "p1", Rating: 5, Comment: "Grew on me"})
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, first.ID, second.ID, "replacement keeps the original document")

	listed, err := svc.ListForProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 5, listed[0].Rating)
	assert.Equal(t, "Grew on me", listed[0].Comment)
	assert.Len(t, store.reviews, 1)
}

func TestSubmitValidation(t *testing.T) {
	svc, _ := testReviews()
	ctx := context.Background()

	_, _, err := svc.Submit(ctx, "user1", SubmitInput{Rating: 3, Comment: "ok"})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, _, err = svc.Submit(ctx, "user1", SubmitInput{ProductID: "p1", Rating: 0, Comment: "ok"})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, _, err = svc.Submit(ctx, "user1", SubmitInput{ProductID: "p1", Rating: 6, Comment: "ok"})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, _, err = svc.Submit(ctx, "user1", SubmitInput{ProductID: "p1", Rating: 3, Comment: "   "})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestSubmitUnknownUser(t *testing.T) {
	svc, _ := testReviews()

	_, _, err := svc.Submit(context.Background(), "ghost", SubmitInput{ProductID: "p1", Rating: 3, Comment: "ok"})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestListForProductRequiresID(t *testing.T) {
	svc, _ := testReviews()

	_, err := svc.ListForProduct(context.Background(), "")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}
