// Command seed fills an empty catalog with demo categories and products.
// Running it twice leaves the data unchanged.
package main

import (
	"context"
	"errors"
	"flag"

	"github.com/sirupsen/logrus"

	"catalog-api/internal/apperrors"
	"catalog-api/internal/config"
	"catalog-api/internal/database"
	"catalog-api/internal/logging"
	"catalog-api/internal/models"
	"catalog-api/internal/repository"
	"catalog-api/internal/services"
)

type seedProduct struct {
	name  string
	price float64
}

var catalog = []struct {
	category string
	products []seedProduct
}{
	{"Electronics", []seedProduct{{"Laptop", 799.99}, {"Headphones", 59.90}, {"USB-C Cable", 9.99}}},
	{"Books", []seedProduct{{"The Go Programming Language", 39.95}, {"Designing Data-Intensive Applications", 44.50}}},
	{"Garden", []seedProduct{{"Watering Can", 14.00}}},
}

func main() {
	migrate := flag.Bool("migrate", true, "create the tables before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	dbPool, err := database.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer dbPool.Close()

	if *migrate {
		if err := database.EnsureSchema(ctx, dbPool); err != nil {
			logger.WithError(err).Fatal("Failed to apply database schema")
		}
	}

	tx := database.NewTransactor(dbPool)
	categoryRepo := repository.NewCategoryRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	categoryService := services.NewCategoryService(tx, categoryRepo, productRepo, logger)
	productService := services.NewProductService(tx, productRepo, categoryRepo, logger)

	for _, entry := range catalog {
		category, err := findOrCreateCategory(ctx, categoryService, entry.category)
		if err != nil {
			logger.WithError(err).WithField("category", entry.category).Fatal("Failed to seed category")
		}

		existing, err := categoryService.GetCategoryProducts(ctx, category.ID)
		if err != nil {
			logger.WithError(err).Fatal("Failed to list category products")
		}
		have := make(map[string]bool, len(existing))
		for _, p := range existing {
			have[p.Name] = true
		}

		for _, sp := range entry.products {
			if have[sp.name] {
				continue
			}
			_, err := productService.CreateProduct(ctx, &models.Product{
				Name:       sp.name,
				Price:      sp.price,
				CategoryID: category.ID,
			})
			if err != nil {
				logger.WithError(err).WithField("product", sp.name).Fatal("Failed to seed product")
			}
		}
	}

	logger.WithField("categories", len(catalog)).Info("Seeding finished")
}

// findOrCreateCategory returns the category with this name, creating it when absent
func findOrCreateCategory(ctx context.Context, svc services.CategoryServiceInterface, name string) (*models.Category, error) {
	category, err := svc.FindCategoryByName(ctx, name)
	if err == nil {
		return category, nil
	}

	var notFound *apperrors.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}
	return svc.CreateCategory(ctx, &models.Category{Name: name})
}
