// internal/domain/catalog/category_service.go
package catalog

import (
	"context"
	"strings"
)

// CategoryCreateRequest represents category creation data
type CategoryCreateRequest struct {
	Slug     string `json:"slug" binding:"required"`
	Name     string `json:"name" binding:"required"`
	NameUrdu string `json:"name_urdu"`
	Icon     string `json:"icon"`
}

// CategoryUpdateRequest represents category update data
type CategoryUpdateRequest struct {
	Slug     *string `json:"slug"`
	Name     *string `json:"name"`
	NameUrdu *string `json:"name_urdu"`
	Icon     *string `json:"icon"`
}

// GetCategories returns all categories with derived product counts
func (s *Service) GetCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.productCounts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range categories {
		categories[i].ProductCount = counts[strings.ToLower(categories[i].Slug)]
	}
	return categories, nil
}

// GetCategory returns a single category by id with its product count
func (s *Service) GetCategory(ctx context.Context, id uint) (*Category, error) {
	category, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withProductCount(ctx, category)
}

// GetCategoryBySlug returns a single category by slug with its product count
func (s *Service) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.withProductCount(ctx, category)
}

// CreateCategory creates a new category (admin only)
func (s *Service) CreateCategory(ctx context.Context, req *CategoryCreateRequest) (*Category, error) {
	category := Category{
		Slug:     req.Slug,
		Name:     req.Name,
		NameUrdu: req.NameUrdu,
		Icon:     req.Icon,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory updates an existing category (admin only)
func (s *Service) UpdateCategory(ctx context.Context, id uint, req *CategoryUpdateRequest) (*Category, error) {
	category, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.NameUrdu != nil {
		category.NameUrdu = *req.NameUrdu
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category (admin only)
func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	return s.categories.Delete(ctx, id)
}

// productCounts tallies products per category key, case-insensitively
func (s *Service) productCounts(ctx context.Context) (map[string]int, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, p := range products {
		counts[strings.ToLower(p.Category)]++
	}
	return counts, nil
}

func (s *Service) withProductCount(ctx context.Context, category *Category) (*Category, error) {
	counts, err := s.productCounts(ctx)
	if err != nil {
		return nil, err
	}
	category.ProductCount = counts[strings.ToLower(category.Slug)]
	return category, nil
}
