package persistence

import (
	"context"
	"fmt"

	"github.com/adavadkardhruv13/Polaris-backend/internal/database"
)

// Migrate creates or updates the catalog schema.
func Migrate(ctx context.Context, db database.Database) error {
	if err := db.Session(ctx).AutoMigrate(&InvestorModel{}); err != nil {
		return fmt.Errorf("migrate investors: %w", err)
	}
	return nil
}
