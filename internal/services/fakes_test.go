package services

import (
	"context"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"catalog-api/internal/apperrors"
	"catalog-api/internal/models"
	"catalog-api/internal/repository"
)

// --- Transactor ---

// fakeTx runs fn directly and counts how often a transaction was opened
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// --- In-memory store backing both fake repositories ---

type memStore struct {
	nextCategoryID int64
	nextProductID  int64
	categories     map[int64]models.Category
	products       map[int64]models.Product
	writes         int
}

func newMemStore() *memStore {
	return &memStore{
		categories: map[int64]models.Category{},
		products:   map[int64]models.Product{},
	}
}

type memCategoryRepo struct{ s *memStore }

func (r memCategoryRepo) FindAll(context.Context) ([]models.Category, error) {
	out := make([]models.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memCategoryRepo) FindByID(_ context.Context, id int64) (*models.Category, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r memCategoryRepo) FindByName(_ context.Context, name string) (*models.Category, error) {
	var matches []models.Category
	for _, c := range r.s.categories {
		if c.Name == name {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, repository.ErrNotFound
	case 1:
		return &matches[0], nil
	default:
		return nil, &apperrors.IncorrectResultSizeError{Expected: 1, Actual: int64(len(matches))}
	}
}

func (r memCategoryRepo) Save(_ context.Context, c *models.Category) (*models.Category, error) {
	r.s.writes++
	if c.ID == 0 {
		r.s.nextCategoryID++
		c.ID = r.s.nextCategoryID
	}
	r.s.categories[c.ID] = models.Category{ID: c.ID, Name: c.Name}
	return c, nil
}

func (r memCategoryRepo) DeleteByID(_ context.Context, id int64) error {
	r.s.writes++
	if _, ok := r.s.categories[id]; !ok {
		return &apperrors.IncorrectResultSizeError{Expected: 1, Actual: 0}
	}
	delete(r.s.categories, id)
	for pid, p := range r.s.products {
		if p.CategoryID == id {
			delete(r.s.products, pid)
		}
	}
	return nil
}

func (r memCategoryRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.s.categories[id]
	return ok, nil
}

type memProductRepo struct{ s *memStore }

func (r memProductRepo) withCategory(p models.Product) models.Product {
	if c, ok := r.s.categories[p.CategoryID]; ok {
		p.Category = &models.Category{ID: c.ID, Name: c.Name}
	}
	return p
}

func (r memProductRepo) FindAll(context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, r.withCategory(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memProductRepo) FindByID(_ context.Context, id int64) (*models.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = r.withCategory(p)
	return &p, nil
}

func (r memProductRepo) FindByCategoryID(ctx context.Context, categoryID int64) ([]models.Product, error) {
	all, _ := r.FindAll(ctx)
	out := []models.Product{}
	for _, p := range all {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memProductRepo) Save(ctx context.Context, p *models.Product) (*models.Product, error) {
	r.s.writes++
	if p.ID == 0 {
		r.s.nextProductID++
		p.ID = r.s.nextProductID
	}
	r.s.products[p.ID] = models.Product{ID: p.ID, Name: p.Name, Price: p.Price, CategoryID: p.CategoryID}
	return r.FindByID(ctx, p.ID)
}

func (r memProductRepo) DeleteByID(_ context.Context, id int64) error {
	r.s.writes++
	if _, ok := r.s.products[id]; !ok {
		return &apperrors.IncorrectResultSizeError{Expected: 1, Actual: 0}
	}
	delete(r.s.products, id)
	return nil
}

func (r memProductRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.s.products[id]
	return ok, nil
}

// --- testify mock for error injection ---

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) FindAll(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Error(1)
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *mockCategoryRepo) FindByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *mockCategoryRepo) Save(ctx context.Context, category *models.Category) (*models.Category, error) {
	args := m.Called(ctx, category)
	saved, _ := args.Get(0).(*models.Category)
	return saved, args.Error(1)
}

func (m *mockCategoryRepo) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCategoryRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
