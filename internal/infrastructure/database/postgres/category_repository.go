// internal/infrastructure/database/postgres/category_repository.go
package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/alibix/storefront-api/internal/domain/catalog"
	"github.com/alibix/storefront-api/internal/pkg/errs"
)

// CategoryRepository is the GORM-backed category store
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a GORM-backed category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories ordered by id
func (r *CategoryRepository) List(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, errs.Storage(err, "failed to list categories")
	}
	return categories, nil
}

// Get returns the category with the given id
func (r *CategoryRepository) Get(ctx context.Context, id uint) (*catalog.Category, error) {
	var category catalog.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFoundf("category %d not found", id)
	}
	if err != nil {
		return nil, errs.Storage(err, "failed to load category")
	}
	return &category, nil
}

// GetBySlug returns the category with the given slug
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	var category catalog.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFoundf("category %q not found", slug)
	}
	if err != nil {
		return nil, errs.Storage(err, "failed to load category")
	}
	return &category, nil
}

// Create inserts a category, assigning max(existing)+1 as its id
func (r *CategoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID uint
		if err := tx.Model(&catalog.Category{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return errs.Storage(err, "failed to allocate category id")
		}
		c.ID = maxID + 1
		if err := tx.Create(c).Error; err != nil {
			return errs.Storage(err, "failed to create category")
		}
		return nil
	})
}

// Update replaces the stored category with the same id
func (r *CategoryRepository) Update(ctx context.Context, c *catalog.Category) error {
	result := r.db.WithContext(ctx).Model(c).Select("*").Omit("created_at").Updates(c)
	if result.Error != nil {
		return errs.Storage(result.Error, "failed to update category")
	}
	if result.RowsAffected == 0 {
		return errs.NotFoundf("category %d not found", c.ID)
	}
	return nil
}

// Delete removes the category with the given id
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Category{}, id)
	if result.Error != nil {
		return errs.Storage(result.Error, "failed to delete category")
	}
	if result.RowsAffected == 0 {
		return errs.NotFoundf("category %d not found", id)
	}
	return nil
}
