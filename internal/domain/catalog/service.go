// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/alibix/storefront-api/internal/config"
	"github.com/alibix/storefront-api/internal/pkg/errs"
)

// Service handles catalog business logic
type Service struct {
	products   ProductRepository
	categories CategoryRepository
	config     *config.Config

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a new catalog service. A nil rng falls back to a
// time-seeded source; tests inject a fixed one for deterministic trending.
func NewService(products ProductRepository, categories CategoryRepository, cfg *config.Config, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		products:   products,
		categories: categories,
		config:     cfg,
		rng:        rng,
	}
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Title            string   `json:"title" binding:"required"`
	TitleUrdu        string   `json:"title_urdu"`
	Description      string   `json:"description"`
	Price            int64    `json:"price" binding:"required"`
	DiscountedPrice  *int64   `json:"discounted_price"`
	Stock            int      `json:"stock"`
	Category         string   `json:"category" binding:"required"`
	Variants         []string `json:"variants"`
	Images           []string `json:"images"`
	IsChineseProduct bool     `json:"is_chinese_product"`
	DeliveryDays     int      `json:"delivery_days"`
}

// ProductUpdateRequest represents product update data
type ProductUpdateRequest struct {
	Title            *string   `json:"title"`
	TitleUrdu        *string   `json:"title_urdu"`
	Description      *string   `json:"description"`
	Price            *int64    `json:"price"`
	DiscountedPrice  *int64    `json:"discounted_price"`
	Stock            *int      `json:"stock"`
	Category         *string   `json:"category"`
	Variants         *[]string `json:"variants"`
	Images           *[]string `json:"images"`
	IsChineseProduct *bool     `json:"is_chinese_product"`
	DeliveryDays     *int      `json:"delivery_days"`
}

// GetProducts returns all products in storage order
func (s *Service) GetProducts(ctx context.Context) ([]Product, error) {
	return s.products.List(ctx)
}

// GetProduct returns a single product by id
func (s *Service) GetProduct(ctx context.Context, id uint) (*Product, error) {
	return s.products.Get(ctx, id)
}

// GetProductsByCategory returns products whose category matches the key,
// case-insensitively
func (s *Service) GetProductsByCategory(ctx context.Context, categoryKey string) ([]Product, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	key := strings.ToLower(categoryKey)
	filtered := make([]Product, 0)
	for _, p := range all {
		if strings.ToLower(p.Category) == key {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// SearchProducts returns products matching the term in either title, the
// description, or the category key. Matching is case-insensitive substring;
// an empty result is not an error.
func (s *Service) SearchProducts(ctx context.Context, term string) ([]Product, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	matched := make([]Product, 0)
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(p.TitleUrdu, term) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// GetFeatured returns discounted, in-stock products in storage order, capped
// at the configured limit. Deliberately not ranked by discount size.
func (s *Service) GetFeatured(ctx context.Context) ([]Product, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	featured := make([]Product, 0, s.config.Store.FeaturedLimit)
	for _, p := range all {
		if p.DiscountedPrice != nil && p.Stock > 0 {
			featured = append(featured, p)
			if len(featured) == s.config.Store.FeaturedLimit {
				break
			}
		}
	}
	return featured, nil
}

// GetTrending returns a random sample of products, re-randomized every call.
// There is no persisted trend signal.
func (s *Service) GetTrending(ctx context.Context) ([]Product, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	s.mu.Unlock()

	if len(all) > s.config.Store.TrendingLimit {
		all = all[:s.config.Store.TrendingLimit]
	}
	return all, nil
}

// SearchByImage returns a random sample of products for an uploaded photo.
// There is no image model behind it; visual search is mocked with a
// sample re-randomized per upload.
func (s *Service) SearchByImage(ctx context.Context) ([]Product, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	s.mu.Unlock()

	if len(all) > s.config.Store.ImageSearchLimit {
		all = all[:s.config.Store.ImageSearchLimit]
	}
	return all, nil
}

// GetRelated returns same-category products excluding the given id, capped at
// the configured limit, in storage order
func (s *Service) GetRelated(ctx context.Context, productID uint, categoryKey string) ([]Product, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	key := strings.ToLower(categoryKey)
	related := make([]Product, 0, s.config.Store.RelatedLimit)
	for _, p := range all {
		if p.ID != productID && strings.ToLower(p.Category) == key {
			related = append(related, p)
			if len(related) == s.config.Store.RelatedLimit {
				break
			}
		}
	}
	return related, nil
}

// GetSoldOut returns products with no stock, for the admin back-office
func (s *Service) GetSoldOut(ctx context.Context) ([]Product, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	soldOut := make([]Product, 0)
	for _, p := range all {
		if p.Stock == 0 {
			soldOut = append(soldOut, p)
		}
	}
	return soldOut, nil
}

// CreateProduct creates a new product (admin only)
func (s *Service) CreateProduct(ctx context.Context, req *ProductCreateRequest) (*Product, error) {
	deliveryDays := req.DeliveryDays
	if deliveryDays == 0 {
		deliveryDays = 3
	}

	product := Product{
		Title:            req.Title,
		TitleUrdu:        req.TitleUrdu,
		Description:      req.Description,
		Price:            req.Price,
		DiscountedPrice:  req.DiscountedPrice,
		Stock:            req.Stock,
		Category:         req.Category,
		Variants:         req.Variants,
		Images:           req.Images,
		IsChineseProduct: req.IsChineseProduct,
		DeliveryDays:     deliveryDays,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct updates an existing product (admin only)
func (s *Service) UpdateProduct(ctx context.Context, id uint, req *ProductUpdateRequest) (*Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.TitleUrdu != nil {
		product.TitleUrdu = *req.TitleUrdu
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.DiscountedPrice != nil {
		product.DiscountedPrice = req.DiscountedPrice
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Variants != nil {
		product.Variants = *req.Variants
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.IsChineseProduct != nil {
		product.IsChineseProduct = *req.IsChineseProduct
	}
	if req.DeliveryDays != nil {
		product.DeliveryDays = *req.DeliveryDays
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product (admin only)
func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	return s.products.Delete(ctx, id)
}

// UpdateStock sets a product's stock level, clamped at zero (admin only)
func (s *Service) UpdateStock(ctx context.Context, id uint, quantity int) (*Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if quantity < 0 {
		quantity = 0
	}
	product.Stock = quantity

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DecrementStock reduces a product's stock by the given quantity, floored at
// zero. Used by order placement.
func (s *Service) DecrementStock(ctx context.Context, id uint, quantity int) error {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return err
	}

	product.Stock -= quantity
	if product.Stock < 0 {
		product.Stock = 0
	}

	return s.products.Update(ctx, product)
}

// IsNotFound reports whether err is a catalog lookup miss
func IsNotFound(err error) bool {
	return errs.Is(err, errs.CodeNotFound)
}
