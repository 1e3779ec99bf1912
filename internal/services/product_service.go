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

const productResource = "Product"

// ProductServiceInterface defines the contract for product operations
type ProductServiceInterface interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// ProductService implements ProductServiceInterface
type ProductService struct {
	tx           database.Transactor
	productRepo  repository.ProductRepositoryInterface
	categoryRepo repository.CategoryRepositoryInterface
	log          *logrus.Logger
}

// NewProductService creates a new ProductService instance
func NewProductService(
	tx database.Transactor,
	productRepo repository.ProductRepositoryInterface,
	categoryRepo repository.CategoryRepositoryInterface,
	logger *logrus.Logger,
) *ProductService {
	return &ProductService{
		tx:           tx,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		log:          logger,
	}
}

// GetAllProducts returns every stored product with its category
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		products, err = s.productRepo.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to get products: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debugf("Fetched %d products", len(products))
	return products, nil
}

// GetProductByID fails with NotFound if no row matches
func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product *models.Product
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		product, err = s.productRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.log.WithField("id", id).Warn("Product not found")
				return apperrors.NewNotFoundError(productResource, id)
			}
			return fmt.Errorf("failed to get product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// CreateProduct persists a new product. The referenced category must exist.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	var saved *models.Product
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureCategoryExists(ctx, product.CategoryID); err != nil {
			return err
		}

		var err error
		saved, err = s.productRepo.Save(ctx, product)
		if err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"id": saved.ID, "name": saved.Name}).Info("Product created")
	return saved, nil
}

// UpdateProduct replaces the product identified by product.ID, which the
// caller sets before invoking it
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	var saved *models.Product
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureExists(ctx, product.ID); err != nil {
			return err
		}
		if err := s.ensureCategoryExists(ctx, product.CategoryID); err != nil {
			return err
		}

		var err error
		saved, err = s.productRepo.Save(ctx, product)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("id", saved.ID).Info("Product updated")
	return saved, nil
}

// DeleteProduct removes the product, failing with NotFound if it is absent
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureExists(ctx, id); err != nil {
			return err
		}
		if err := s.productRepo.DeleteByID(ctx, id); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithField("id", id).Info("Product deleted")
	return nil
}

func (s *ProductService) ensureExists(ctx context.Context, id int64) error {
	exists, err := s.productRepo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		s.log.WithField("id", id).Warn("Product not found")
		return apperrors.NewNotFoundError(productResource, id)
	}
	return nil
}

func (s *ProductService) ensureCategoryExists(ctx context.Context, categoryID int64) error {
	exists, err := s.categoryRepo.ExistsByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		s.log.WithField("category_id", categoryID).Warn("Referenced category not found")
		return apperrors.NewNotFoundError(categoryResource, categoryID)
	}
	return nil
}
