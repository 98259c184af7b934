// internal/domain/catalog/memory.go
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/alibix/storefront-api/internal/pkg/errs"
)

//go:embed fixtures/products.json
var productFixtures []byte

//go:embed fixtures/categories.json
var categoryFixtures []byte

// MemoryProductRepository keeps products in an in-memory slice,
// insertion order preserved.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []Product
}

// NewMemoryProductRepository creates an empty in-memory product store
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{}
}

// NewSeededProductRepository creates an in-memory product store loaded
// with the bundled fixture data
func NewSeededProductRepository() (*MemoryProductRepository, error) {
	var products []Product
	if err := json.Unmarshal(productFixtures, &products); err != nil {
		return nil, fmt.Errorf("failed to load product fixtures: %w", err)
	}
	return &MemoryProductRepository{products: products}, nil
}

// List returns all products in insertion order
func (r *MemoryProductRepository) List(ctx context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// Get returns the product with the given id
func (r *MemoryProductRepository) Get(ctx context.Context, id uint) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, errs.NotFoundf("product %d not found", id)
}

// Create appends a product, assigning max(existing)+1 as its id.
// Ids start at 1 on an empty store.
func (r *MemoryProductRepository) Create(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID uint
	for i := range r.products {
		if r.products[i].ID > maxID {
			maxID = r.products[i].ID
		}
	}
	p.ID = maxID + 1

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	r.products = append(r.products, *p)
	return nil
}

// Update replaces the stored product with the same id
func (r *MemoryProductRepository) Update(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == p.ID {
			p.CreatedAt = r.products[i].CreatedAt
			p.UpdatedAt = time.Now().UTC()
			r.products[i] = *p
			return nil
		}
	}
	return errs.NotFoundf("product %d not found", p.ID)
}

// Delete removes the product with the given id
func (r *MemoryProductRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return errs.NotFoundf("product %d not found", id)
}

// MemoryCategoryRepository keeps categories in an in-memory slice
type MemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories []Category
}

// NewMemoryCategoryRepository creates an empty in-memory category store
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{}
}

// NewSeededCategoryRepository creates an in-memory category store loaded
// with the bundled fixture data
func NewSeededCategoryRepository() (*MemoryCategoryRepository, error) {
	var categories []Category
	if err := json.Unmarshal(categoryFixtures, &categories); err != nil {
		return nil, fmt.Errorf("failed to load category fixtures: %w", err)
	}
	return &MemoryCategoryRepository{categories: categories}, nil
}

// List returns all categories in insertion order
func (r *MemoryCategoryRepository) List(ctx context.Context) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

// Get returns the category with the given id
func (r *MemoryCategoryRepository) Get(ctx context.Context, id uint) (*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.categories {
		if r.categories[i].ID == id {
			c := r.categories[i]
			return &c, nil
		}
	}
	return nil, errs.NotFoundf("category %d not found", id)
}

// GetBySlug returns the category with the given slug
func (r *MemoryCategoryRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.categories {
		if r.categories[i].Slug == slug {
			c := r.categories[i]
			return &c, nil
		}
	}
	return nil, errs.NotFoundf("category %q not found", slug)
}

// Create appends a category, assigning max(existing)+1 as its id
func (r *MemoryCategoryRepository) Create(ctx context.Context, c *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID uint
	for i := range r.categories {
		if r.categories[i].ID > maxID {
			maxID = r.categories[i].ID
		}
	}
	c.ID = maxID + 1

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	r.categories = append(r.categories, *c)
	return nil
}

// Update replaces the stored category with the same id
func (r *MemoryCategoryRepository) Update(ctx context.Context, c *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.categories {
		if r.categories[i].ID == c.ID {
			c.CreatedAt = r.categories[i].CreatedAt
			c.UpdatedAt = time.Now().UTC()
			r.categories[i] = *c
			return nil
		}
	}
	return errs.NotFoundf("category %d not found", c.ID)
}

// Delete removes the category with the given id
func (r *MemoryCategoryRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return errs.NotFoundf("category %d not found", id)
}
