package handlers

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"catalog-api/internal/middleware"
	"catalog-api/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestRouter wires a handler behind the real error middleware
func newTestRouter(register func(gin.IRouter)) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorHandler(quietLogger()))
	register(router)
	return router
}

// --- Mock Services ---

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Error(1)
}

func (m *MockCategoryService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *MockCategoryService) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	args := m.Called(ctx, category)
	created, _ := args.Get(0).(*models.Category)
	return created, args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, id int64, category *models.Category) (*models.Category, error) {
	args := m.Called(ctx, id, category)
	updated, _ := args.Get(0).(*models.Category)
	return updated, args.Error(1)
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCategoryService) GetCategoryProducts(ctx context.Context, id int64) ([]models.Product, error) {
	args := m.Called(ctx, id)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *MockProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *MockProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	args := m.Called(ctx, product)
	created, _ := args.Get(0).(*models.Product)
	return created, args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	args := m.Called(ctx, product)
	updated, _ := args.Get(0).(*models.Product)
	return updated, args.Error(1)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
