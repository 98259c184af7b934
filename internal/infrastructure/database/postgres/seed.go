// internal/infrastructure/database/postgres/seed.go
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/alibix/storefront-api/internal/domain/catalog"
)

// SeedCatalog loads the bundled product and category fixtures into an empty
// database. A database that already has products is left alone.
func SeedCatalog(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	products, err := catalog.NewSeededProductRepository()
	if err != nil {
		return err
	}
	categories, err := catalog.NewSeededCategoryRepository()
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cats, err := categories.List(ctx)
		if err != nil {
			return err
		}
		if len(cats) > 0 {
			if err := tx.Create(&cats).Error; err != nil {
				return fmt.Errorf("failed to seed categories: %w", err)
			}
		}

		prods, err := products.List(ctx)
		if err != nil {
			return err
		}
		if len(prods) > 0 {
			if err := tx.Create(&prods).Error; err != nil {
				return fmt.Errorf("failed to seed products: %w", err)
			}
		}
		return nil
	})
}
