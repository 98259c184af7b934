// internal/infrastructure/database/postgres/product_repository.go
package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/alibix/storefront-api/internal/domain/catalog"
	"github.com/alibix/storefront-api/internal/pkg/errs"
)

// ProductRepository is the GORM-backed product store
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a GORM-backed product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns all products ordered by id
func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, errs.Storage(err, "failed to list products")
	}
	return products, nil
}

// Get returns the product with the given id
func (r *ProductRepository) Get(ctx context.Context, id uint) (*catalog.Product, error) {
	var product catalog.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFoundf("product %d not found", id)
	}
	if err != nil {
		return nil, errs.Storage(err, "failed to load product")
	}
	return &product, nil
}

// Create inserts a product, assigning max(existing)+1 as its id
func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID uint
		if err := tx.Model(&catalog.Product{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return errs.Storage(err, "failed to allocate product id")
		}
		p.ID = maxID + 1
		if err := tx.Create(p).Error; err != nil {
			return errs.Storage(err, "failed to create product")
		}
		return nil
	})
}

// Update replaces the stored product with the same id
func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	result := r.db.WithContext(ctx).Model(p).Select("*").Omit("created_at").Updates(p)
	if result.Error != nil {
		return errs.Storage(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return errs.NotFoundf("product %d not found", p.ID)
	}
	return nil
}

// Delete removes the product with the given id
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, id)
	if result.Error != nil {
		return errs.Storage(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return errs.NotFoundf("product %d not found", id)
	}
	return nil
}
