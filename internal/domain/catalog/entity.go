// internal/domain/catalog/entity.go
package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alibix/storefront-api/internal/pkg/errs"
)

// StringList stores an ordered list of strings as a JSON column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

// Product represents a catalog product. Titles are bilingual
// (English/Urdu) and amounts are whole rupees.
type Product struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Title            string     `gorm:"not null;size:255" json:"title"`
	TitleUrdu        string     `gorm:"size:255" json:"title_urdu"`
	Description      string     `gorm:"type:text" json:"description"`
	Price            int64      `gorm:"not null" json:"price"`
	DiscountedPrice  *int64     `json:"discounted_price,omitempty"`
	Stock            int        `gorm:"not null;default:0" json:"stock"`
	Category         string     `gorm:"not null;size:100;index" json:"category"`
	Variants         StringList `gorm:"type:text" json:"variants,omitempty"`
	Images           StringList `gorm:"type:text" json:"images,omitempty"`
	IsChineseProduct bool       `gorm:"default:false" json:"is_chinese_product"`
	DeliveryDays     int        `gorm:"not null;default:3" json:"delivery_days"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Category represents a product category
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"uniqueIndex;not null;size:100" json:"slug"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	NameUrdu  string    `gorm:"size:255" json:"name_urdu"`
	Icon      string    `gorm:"size:100" json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Derived from the catalog, never stored
	ProductCount int `gorm:"-" json:"product_count"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Category) TableName() string { return "categories" }

// Business methods for Product

// EffectivePrice returns the discounted price when present, else the list price
func (p *Product) EffectivePrice() int64 {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}

// IsInStock reports whether the product can be purchased
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// DiscountPercentage returns the discount as a whole percentage, 0 when none
func (p *Product) DiscountPercentage() int {
	if p.DiscountedPrice != nil && *p.DiscountedPrice < p.Price && p.Price > 0 {
		return int(((p.Price - *p.DiscountedPrice) * 100) / p.Price)
	}
	return 0
}

// Validate checks construction invariants
func (p *Product) Validate() error {
	if p.Title == "" {
		return errs.Validation("product title is required")
	}
	if p.Price <= 0 {
		return errs.Validation("product price must be positive")
	}
	if p.DiscountedPrice != nil && *p.DiscountedPrice >= p.Price {
		return errs.Validation("discounted price must be lower than price")
	}
	if p.Stock < 0 {
		return errs.Validation("stock must not be negative")
	}
	if p.Category == "" {
		return errs.Validation("product category is required")
	}
	if p.DeliveryDays <= 0 {
		return errs.Validation("delivery days must be positive")
	}
	return nil
}

// Validate checks construction invariants
func (c *Category) Validate() error {
	if c.Slug == "" {
		return errs.Validation("category slug is required")
	}
	if c.Name == "" {
		return errs.Validation("category name is required")
	}
	return nil
}
