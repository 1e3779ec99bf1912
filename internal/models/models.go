package models

// =============================================================================
// DATABASE MODELS - These match PostgreSQL table structures
// =============================================================================

// Category represents a row in the "category" table
// STRUCT TAGS: The `db:"column_name"` tags tell pgx which column to map to which field
type Category struct {
	// ID is the primary key, generated by the database on insert
	ID int64 `db:"id"`

	// Name is the display name (NOT NULL, max 100 characters)
	Name string `db:"name"`

	// Products is only populated when explicitly loaded through the
	// product repository (FindByCategoryID). db:"-" keeps pgx from scanning it.
	Products []Product `db:"-"`
}

// Product represents a row in the "product" table
type Product struct {
	ID    int64   `db:"id"`
	Name  string  `db:"name"`
	Price float64 `db:"price"`

	// CategoryID is the required foreign key to category.id
	CategoryID int64 `db:"category_id"`

	// Category is the loaded parent row. Nil when the product was built from
	// a payload without a category; the database rejects it at insert time.
	Category *Category `db:"-"`
}

// =============================================================================
// API DTOs - What clients send to us and what we send back
// =============================================================================
//
// The DTOs are asymmetric on purpose so that JSON encoding never walks a
// cycle: a product embeds its category, a category never embeds products.
// The products of a category are served as ProductSummaryDTO (no back-pointer).
//
// STRUCT TAGS:
// - `json:"field"` for JSON parsing and rendering
// - `binding:"..."` is evaluated by Gin (go-playground/validator) on ShouldBindJSON

// CategoryDTO is the wire format of a category
type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name" binding:"required,notblank,max=100"`
}

// ProductCategoryDTO is the category embedded in a product payload.
// Only the id is needed to link a product; the name is filled on responses.
type ProductCategoryDTO struct {
	ID   int64  `json:"id" binding:"required,gt=0"`
	Name string `json:"name"`
}

// ProductDTO is the wire format of a product
type ProductDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name" binding:"required,notblank,max=100"`

	// Price is a pointer so that "required" rejects a missing field but still
	// accepts 0 (any value, including negative, is allowed)
	Price *float64 `json:"price" binding:"required"`

	Category *ProductCategoryDTO `json:"category" binding:"required"`
}

// ProductSummaryDTO is a product listed under its category
type ProductSummaryDTO struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
