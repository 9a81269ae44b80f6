package subcategories

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

type fakeSubStore struct {
	subs map[string]*models.SubCategory
}

func newFakeSubStore() *fakeSubStore {
	return &fakeSubStore{subs: make(map[string]*models.SubCategory)}
}

func (f *fakeSubStore) InsertSubCategory(_ context.Context, sub *models.SubCategory) error {
	for _, existing := range f.subs {
		if existing.Name == sub.Name {
			return apperr.New(apperr.Duplicate, "subcategory already exists")
		}
	}
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	cp := *sub
	f.subs[sub.ID.Hex()] = &cp
	return nil
}

func (f *fakeSubStore) FindSubCategoryByName(_ context.Context, name string) (*models.SubCategory, error) {
	for _, sub := range f.subs {
		if sub.Name == name {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "subcategory not found")
}

func (f *fakeSubStore) FindAllSubCategories(_ context.Context) ([]models.SubCategory, error) {
	var out []models.SubCategory
	for _, sub := range f.subs {
		out = append(out, *sub)
	}
	return out, nil
}

func (f *fakeSubStore) UpdateSubCategoryName(_ context.Context, id, name string) error {
	sub, ok := f.subs[id]
	if !ok {
		return apperr.New(apperr.NotFound, "subcategory not found")
	}
	sub.Name = name
	return nil
}

func (f *fakeSubStore) DeleteSubCategory(_ context.Context, id string) error {
	if _, ok := f.subs[id]; !ok {
		return apperr.New(apperr.NotFound, "subcategory not found")
	}
	delete(f.subs, id)
	return nil
}

func testSubcategories() (*Service, *fakeSubStore) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	store := newFakeSubStore()
	return NewService(store, logger), store
}

func TestAddTrimsName(t *testing.T) {
	svc, _ := testSubcategories()

	sub, err := svc.Add(context.Background(), "  Hats  ")
	require.NoError(t, err)
	assert.Equal(t, "Hats", sub.Name)
	assert.False(t, sub.Date.IsZero())
}

func TestAddRejectsDuplicateAfterTrim(t *testing.T) {
	svc, _ := testSubcategories()
	ctx := context.Background()

	_, err := svc.Add(ctx, "Hats")
	require.NoError(t, err)

	_, err = svc.Add(ctx, "  Hats ")
	assert.Equal(t, apperr.Duplicate, apperr.KindOf(err))
}

func TestAddRejectsBlankName(t *testing.T) {
	svc, _ := testSubcategories()

	_, err := svc.Add(context.Background(), "   ")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestRename(t *testing.T) {
	svc, store := testSubcategories()
	ctx := context.Background()

	sub, err := svc.Add(ctx, "Hats")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "Scarves")
	require.NoError(t, err)

	require.NoError(t, svc.Rename(ctx, sub.ID.Hex(), " Caps "))
	assert.Equal(t, "Caps", store.subs[sub.ID.Hex()].Name)

	// Renaming onto another subcategory's name collides; renaming onto
	// its own (trimmed) name does not.
	err = svc.Rename(ctx, sub.ID.Hex(), "Scarves")
	assert.Equal(t, apperr.Duplicate, apperr.KindOf(err))
	assert.NoError(t, svc.Rename(ctx, sub.ID.Hex(), "Caps"))
}

func TestRenameUnknownID(t *testing.T) {
	svc, _ := testSubcategories()

	err := svc.Rename(context.Background(), primitive.NewObjectID().Hex(), "Caps")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestRemove(t *testing.T) {
	svc, store := testSubcategories()
	ctx := context.Background()

	sub, err := svc.Add(ctx, "Hats")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, sub.ID.Hex()))
	assert.Empty(t, store.subs)

	err = svc.Remove(ctx, sub.ID.Hex())
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
