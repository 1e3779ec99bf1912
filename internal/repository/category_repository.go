package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"catalog-api/internal/apperrors"
	"catalog-api/internal/database"
	"catalog-api/internal/models"
)

// CategoryRepositoryInterface defines the contract for category data operations
type CategoryRepositoryInterface interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Save(ctx context.Context, category *models.Category) (*models.Category, error)
	DeleteByID(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// CategoryRepository implements CategoryRepositoryInterface
type CategoryRepository struct {
	db database.DBTX
}

// NewCategoryRepository creates a new CategoryRepository instance
func NewCategoryRepository(db database.DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// FindAll retrieves all categories in id order
func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT id, name
		FROM category
		ORDER BY id ASC
	`
	rows, err := database.Querier(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, wrapPgError("failed to query categories", err)
	}

	// pgx.CollectRows handles iteration, scanning, and closing rows automatically
	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, wrapPgError("failed to collect category rows", err)
	}

	return categories, nil
}

// FindByID retrieves a single category
// Returns ErrNotFound if the category doesn't exist
func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	query := `SELECT id, name FROM category WHERE id = $1`

	var category models.Category
	err := database.Querier(ctx, r.db).QueryRow(ctx, query, id).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapPgError("failed to get category by ID", err)
	}

	return &category, nil
}

// FindByName retrieves the category with exactly this name.
// Names are not unique in the schema, so more than one match is reported as
// an IncorrectResultSizeError instead of silently picking one.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	query := `SELECT id, name FROM category WHERE name = $1 ORDER BY id ASC`

	rows, err := database.Querier(ctx, r.db).Query(ctx, query, name)
	if err != nil {
		return nil, wrapPgError("failed to query category by name", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, wrapPgError("failed to collect category rows", err)
	}

	switch len(categories) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &categories[0], nil
	default:
		return nil, &apperrors.IncorrectResultSizeError{Expected: 1, Actual: int64(len(categories))}
	}
}

// Save inserts the category when it has no id yet, otherwise replaces its row.
// The returned pointer is the same category with the stored values.
func (r *CategoryRepository) Save(ctx context.Context, category *models.Category) (*models.Category, error) {
	q := database.Querier(ctx, r.db)

	if category.ID == 0 {
		query := `INSERT INTO category (name) VALUES ($1) RETURNING id`
		if err := q.QueryRow(ctx, query, category.Name).Scan(&category.ID); err != nil {
			return nil, wrapPgError("failed to insert category", err)
		}
		return category, nil
	}

	query := `UPDATE category SET name = $1 WHERE id = $2`
	tag, err := q.Exec(ctx, query, category.Name, category.ID)
	if err != nil {
		return nil, wrapPgError("failed to update category", err)
	}
	if err := expectOneRow(tag); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteByID removes the category; its products go with it (ON DELETE CASCADE)
func (r *CategoryRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := database.Querier(ctx, r.db).Exec(ctx, `DELETE FROM category WHERE id = $1`, id)
	if err != nil {
		return wrapPgError("failed to delete category", err)
	}
	return expectOneRow(tag)
}

// ExistsByID reports whether a category row with this id exists
func (r *CategoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := database.Querier(ctx, r.db).
		QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM category WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, wrapPgError("failed to check category existence", err)
	}
	return exists, nil
}
