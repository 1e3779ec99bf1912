// =============================================================================
// FILE: internal/services/category_service.go
// PURPOSE: Business logic for categories
// =============================================================================
//
// Categories have almost no business rules. The one that exists: update and
// delete must fail with a NotFound error when the id is absent, and must not
// write anything in that case. Every method runs inside one transaction.
// =============================================================================

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"catalog-api/internal/apperrors"
	"catalog-api/internal/database"
	"catalog-api/internal/models"
	"catalog-api/internal/repository"
)

const categoryResource = "Category"

// CategoryServiceInterface defines the contract for category operations
type CategoryServiceInterface interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	GetCategoryProducts(ctx context.Context, id int64) ([]models.Product, error)
}

// CategoryService implements CategoryServiceInterface
type CategoryService struct {
	tx           database.Transactor
	categoryRepo repository.CategoryRepositoryInterface
	productRepo  repository.ProductRepositoryInterface
	log          *logrus.Logger
}

// NewCategoryService creates a new CategoryService instance
// Accepts interfaces, not concrete types - this enables mocking for tests
func NewCategoryService(
	tx database.Transactor,
	categoryRepo repository.CategoryRepositoryInterface,
	productRepo repository.ProductRepositoryInterface,
	logger *logrus.Logger,
) *CategoryService {
	return &CategoryService{
		tx:           tx,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		log:          logger,
	}
}

// GetAllCategories returns every stored category in the store's default order
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		categories, err = s.categoryRepo.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to get categories: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debugf("Fetched %d categories", len(categories))
	return categories, nil
}

// GetCategoryByID fails with NotFound if no row matches
func (s *CategoryService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var category *models.Category
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		category, err = s.categoryRepo.FindByID(ctx, id)
		return s.translate(err, apperrors.NewNotFoundError(categoryResource, id), "failed to get category")
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// FindCategoryByName looks a category up by its exact name
func (s *CategoryService) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category *models.Category
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		category, err = s.categoryRepo.FindByName(ctx, name)
		return s.translate(err, apperrors.NewNotFoundByError(categoryResource, "name", name), "failed to find category by name")
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// CreateCategory persists unconditionally; names are not required to be unique
func (s *CategoryService) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	var saved *models.Category
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.categoryRepo.Save(ctx, category)
		if err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"id": saved.ID, "name": saved.Name}).Info("Category created")
	return saved, nil
}

// UpdateCategory replaces the category stored under id.
// The id argument always wins over any id carried by the payload.
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, category *models.Category) (*models.Category, error) {
	var saved *models.Category
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureExists(ctx, id); err != nil {
			return err
		}

		category.ID = id
		var err error
		saved, err = s.categoryRepo.Save(ctx, category)
		if err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("id", id).Info("Category updated")
	return saved, nil
}

// DeleteCategory removes the category and, by cascade, its products
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureExists(ctx, id); err != nil {
			return err
		}
		if err := s.categoryRepo.DeleteByID(ctx, id); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithField("id", id).Info("Category deleted")
	return nil
}

// GetCategoryProducts lists the products that reference the category
func (s *CategoryService) GetCategoryProducts(ctx context.Context, id int64) ([]models.Product, error) {
	var products []models.Product
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureExists(ctx, id); err != nil {
			return err
		}

		var err error
		products, err = s.productRepo.FindByCategoryID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get products of category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CategoryService) ensureExists(ctx context.Context, id int64) error {
	exists, err := s.categoryRepo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		s.log.WithField("id", id).Warn("Category not found")
		return apperrors.NewNotFoundError(categoryResource, id)
	}
	return nil
}

// translate replaces repository.ErrNotFound with notFound and wraps any
// other error with msg
func (s *CategoryService) translate(err error, notFound *apperrors.NotFoundError, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		s.log.WithField("key", notFound.ID).Warn("Category not found")
		return notFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
