package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the category and product tables if they do not exist.
// It is idempotent and safe to run on every start.
func EnsureSchema(ctx context.Context, db DBTX) error {
	// no arguments, so pgx uses the simple protocol and accepts several statements
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
