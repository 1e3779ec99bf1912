package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"catalog-api/internal/apperrors"
	"catalog-api/internal/models"
)

func newCategoryFixture() (*CategoryService, *memStore, *fakeTx) {
	store := newMemStore()
	tx := &fakeTx{}
	svc := NewCategoryService(tx, memCategoryRepo{store}, memProductRepo{store}, quietLogger())
	return svc, store, tx
}

func TestCreateCategoryAssignsID(t *testing.T) {
	svc, _, tx := newCategoryFixture()
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, &models.Category{Name: "Electronics"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Electronics", created.Name)
	assert.Equal(t, 1, tx.calls)
}

func TestCreateCategoryAllowsDuplicateNames(t *testing.T) {
	svc, _, _ := newCategoryFixture()
	ctx := context.Background()

	first, err := svc.CreateCategory(ctx, &models.Category{Name: "Books"})
	require.NoError(t, err)
	second, err := svc.CreateCategory(ctx, &models.Category{Name: "Books"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestGetCategoryByID(t *testing.T) {
	svc, _, _ := newCategoryFixture()
	ctx := context.Background()
	created, err := svc.CreateCategory(ctx, &models.Category{Name: "Toys"})
	require.NoError(t, err)

	t.Run("Repeated reads are equal", func(t *testing.T) {
		first, err := svc.GetCategoryByID(ctx, created.ID)
		require.NoError(t, err)
		second, err := svc.GetCategoryByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Absent id is NotFound", func(t *testing.T) {
		_, err := svc.GetCategoryByID(ctx, 404)

		var nf *apperrors.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "Category with ID 404 not found", nf.Error())
	})
}

func TestGetAllCategoriesContainsEveryCreated(t *testing.T) {
	svc, _, _ := newCategoryFixture()
	ctx := context.Background()

	names := []string{"A", "B", "C"}
	for _, name := range names {
		_, err := svc.CreateCategory(ctx, &models.Category{Name: name})
		require.NoError(t, err)
	}

	all, err := svc.GetAllCategories(ctx)
	require.NoError(t, err)

	got := make([]string, 0, len(all))
	for _, c := range all {
		got = append(got, c.Name)
	}
	assert.ElementsMatch(t, names, got)
}

func TestUpdateCategory(t *testing.T) {
	t.Run("Path id overrides payload id", func(t *testing.T) {
		svc, store, _ := newCategoryFixture()
		ctx := context.Background()
		target, _ := svc.CreateCategory(ctx, &models.Category{Name: "Old"})
		other, _ := svc.CreateCategory(ctx, &models.Category{Name: "Other"})

		updated, err := svc.UpdateCategory(ctx, target.ID, &models.Category{ID: other.ID, Name: "New"})
		require.NoError(t, err)

		assert.Equal(t, target.ID, updated.ID)
		assert.Equal(t, "New", store.categories[target.ID].Name)
		assert.Equal(t, "Other", store.categories[other.ID].Name)
	})

	t.Run("Absent id is NotFound and writes nothing", func(t *testing.T) {
		svc, store, _ := newCategoryFixture()

		_, err := svc.UpdateCategory(context.Background(), 77, &models.Category{Name: "X"})

		var nf *apperrors.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, int64(77), nf.ID)
		assert.Zero(t, store.writes)
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("Removes the category and cascades to products", func(t *testing.T) {
		svc, store, _ := newCategoryFixture()
		ctx := context.Background()
		c, _ := svc.CreateCategory(ctx, &models.Category{Name: "Garden"})
		store.products[1] = models.Product{ID: 1, Name: "Hose", CategoryID: c.ID}

		require.NoError(t, svc.DeleteCategory(ctx, c.ID))

		_, err := svc.GetCategoryByID(ctx, c.ID)
		var nf *apperrors.NotFoundError
		assert.True(t, errors.As(err, &nf))
		assert.Empty(t, store.products)
	})

	t.Run("Absent id is NotFound", func(t *testing.T) {
		svc, store, _ := newCategoryFixture()

		err := svc.DeleteCategory(context.Background(), 5)

		var nf *apperrors.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Zero(t, store.writes)
	})
}

func TestGetCategoryProducts(t *testing.T) {
	svc, store, _ := newCategoryFixture()
	ctx := context.Background()
	c, _ := svc.CreateCategory(ctx, &models.Category{Name: "Audio"})
	store.products[1] = models.Product{ID: 1, Name: "Speaker", Price: 50, CategoryID: c.ID}
	store.products[2] = models.Product{ID: 2, Name: "Elsewhere", Price: 5, CategoryID: c.ID + 100}

	products, err := svc.GetCategoryProducts(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Speaker", products[0].Name)

	_, err = svc.GetCategoryProducts(ctx, 999)
	var nf *apperrors.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestFindCategoryByName(t *testing.T) {
	svc, _, _ := newCategoryFixture()
	ctx := context.Background()
	_, _ = svc.CreateCategory(ctx, &models.Category{Name: "Unique"})
	_, _ = svc.CreateCategory(ctx, &models.Category{Name: "Twin"})
	_, _ = svc.CreateCategory(ctx, &models.Category{Name: "Twin"})

	found, err := svc.FindCategoryByName(ctx, "Unique")
	require.NoError(t, err)
	assert.Equal(t, "Unique", found.Name)

	_, err = svc.FindCategoryByName(ctx, "Missing")
	var nf *apperrors.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Missing", nf.ID)
	assert.Equal(t, "Category with name Missing not found", nf.Error())

	_, err = svc.FindCategoryByName(ctx, "Twin")
	var size *apperrors.IncorrectResultSizeError
	assert.True(t, errors.As(err, &size))
}

func TestCategoryServiceWrapsRepositoryErrors(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	repo := new(mockCategoryRepo)
	repo.On("FindAll", mock.Anything).Return(nil, dbErr)
	repo.On("FindByID", mock.Anything, int64(1)).Return(nil, dbErr)
	repo.On("ExistsByID", mock.Anything, int64(2)).Return(true, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*models.Category")).Return(nil, dbErr)

	svc := NewCategoryService(&fakeTx{}, repo, memProductRepo{newMemStore()}, quietLogger())

	_, err := svc.GetAllCategories(ctx)
	assert.ErrorIs(t, err, dbErr)

	_, err = svc.GetCategoryByID(ctx, 1)
	assert.ErrorIs(t, err, dbErr)
	var nf *apperrors.NotFoundError
	assert.False(t, errors.As(err, &nf))

	_, err = svc.UpdateCategory(ctx, 2, &models.Category{Name: "Y"})
	assert.ErrorIs(t, err, dbErr)

	repo.AssertExpectations(t)
}
