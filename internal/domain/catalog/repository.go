// internal/domain/catalog/repository.go
package catalog

import "context"

// ProductRepository is the persistence boundary for products. Implementations
// must keep insertion order stable for List and assign max(existing)+1 ids on
// Create, starting at 1 for an empty store.
type ProductRepository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint) error
}

// CategoryRepository is the persistence boundary for categories
type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id uint) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uint) error
}
