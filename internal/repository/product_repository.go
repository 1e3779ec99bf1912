package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"catalog-api/internal/database"
	"catalog-api/internal/models"
)

// ProductRepositoryInterface defines the contract for product data operations
type ProductRepositoryInterface interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindByCategoryID(ctx context.Context, categoryID int64) ([]models.Product, error)
	Save(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteByID(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// ProductRepository implements ProductRepositoryInterface
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// productRow is a product joined with its category name
type productRow struct {
	ID           int64   `db:"id"`
	Name         string  `db:"name"`
	Price        float64 `db:"price"`
	CategoryID   int64   `db:"category_id"`
	CategoryName string  `db:"category_name"`
}

func (row productRow) toModel() models.Product {
	return models.Product{
		ID:         row.ID,
		Name:       row.Name,
		Price:      row.Price,
		CategoryID: row.CategoryID,
		Category: &models.Category{
			ID:   row.CategoryID,
			Name: row.CategoryName,
		},
	}
}

// every read joins the parent so responses can embed {id, name} of the category
const selectProducts = `
	SELECT p.id, p.name, p.price, p.category_id, c.name AS category_name
	FROM product p
	JOIN category c ON c.id = p.category_id
`

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := database.Querier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, wrapPgError("failed to query products", err)
	}

	productRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return nil, wrapPgError("failed to collect product rows", err)
	}

	products := make([]models.Product, 0, len(productRows))
	for _, row := range productRows {
		products = append(products, row.toModel())
	}
	return products, nil
}

// FindAll retrieves all products with their category, in id order
func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.queryProducts(ctx, selectProducts+` ORDER BY p.id ASC`)
}

// FindByCategoryID retrieves the products of one category
func (r *ProductRepository) FindByCategoryID(ctx context.Context, categoryID int64) ([]models.Product, error) {
	return r.queryProducts(ctx, selectProducts+` WHERE p.category_id = $1 ORDER BY p.id ASC`, categoryID)
}

// FindByID retrieves a single product
// Returns ErrNotFound if the product doesn't exist
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	rows, err := database.Querier(ctx, r.db).Query(ctx, selectProducts+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, wrapPgError("failed to query product by ID", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapPgError("failed to get product by ID", err)
	}

	product := row.toModel()
	return &product, nil
}

// Save inserts the product when it has no id yet, otherwise replaces its row.
// The stored product is read back so the category name is filled in.
func (r *ProductRepository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	q := database.Querier(ctx, r.db)

	if product.ID == 0 {
		query := `
			INSERT INTO product (name, price, category_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		err := q.QueryRow(ctx, query, product.Name, product.Price, product.CategoryID).Scan(&product.ID)
		if err != nil {
			return nil, wrapPgError("failed to insert product", err)
		}
	} else {
		query := `UPDATE product SET name = $1, price = $2, category_id = $3 WHERE id = $4`
		tag, err := q.Exec(ctx, query, product.Name, product.Price, product.CategoryID, product.ID)
		if err != nil {
			return nil, wrapPgError("failed to update product", err)
		}
		if err := expectOneRow(tag); err != nil {
			return nil, err
		}
	}

	return r.FindByID(ctx, product.ID)
}

// DeleteByID removes the product
func (r *ProductRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := database.Querier(ctx, r.db).Exec(ctx, `DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		return wrapPgError("failed to delete product", err)
	}
	return expectOneRow(tag)
}

// ExistsByID reports whether a product row with this id exists
func (r *ProductRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := database.Querier(ctx, r.db).
		QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM product WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, wrapPgError("failed to check product existence", err)
	}
	return exists, nil
}
