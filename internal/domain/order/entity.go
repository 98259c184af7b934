// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"github.com/alibix/storefront-api/internal/domain/cart"
)

// OrderStatus represents the fulfillment state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPacked    OrderStatus = "Packed"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
)

// statusRank orders the lifecycle. Transitions only move forward, but may
// skip intermediate states.
var statusRank = map[OrderStatus]int{
	StatusPending:   0,
	StatusPacked:    1,
	StatusShipped:   2,
	StatusDelivered: 3,
}

// IsValid reports whether the status is a known lifecycle state
func (s OrderStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to target is allowed.
// Backward moves and same-state moves are rejected.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[target]
	if !ok {
		return false
	}
	return to > from
}

// AllStatuses returns the lifecycle states in order
func AllStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusPacked, StatusShipped, StatusDelivered}
}

// PaymentMethod represents how the customer pays
type PaymentMethod string

const (
	PaymentCOD       PaymentMethod = "cod"
	PaymentEasypaisa PaymentMethod = "easypaisa"
	PaymentJazzCash  PaymentMethod = "jazzcash"
	PaymentBank      PaymentMethod = "bank"
)

// IsValid reports whether the payment method is supported
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCOD, PaymentEasypaisa, PaymentJazzCash, PaymentBank:
		return true
	}
	return false
}

// CustomerInfo holds the contact details captured at checkout
type CustomerInfo struct {
	Name    string `json:"name" gorm:"column:customer_name;not null"`
	Phone   string `json:"phone" gorm:"column:customer_phone;not null"`
	Email   string `json:"email" gorm:"column:customer_email"`
	Address string `json:"address" gorm:"column:customer_address;not null"`
	City    string `json:"city" gorm:"column:customer_city"`
}

// OrderItem is a purchased line, priced at the moment the cart captured it
type OrderItem struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	OrderID         uint   `json:"order_id" gorm:"index;not null"`
	ProductID       uint   `json:"product_id" gorm:"not null"`
	Title           string `json:"title" gorm:"not null"`
	TitleUrdu       string `json:"title_urdu"`
	SelectedVariant string `json:"selected_variant"`
	Quantity        int    `json:"quantity" gorm:"not null"`
	Price           int64  `json:"price" gorm:"not null"`
}

// TableName overrides the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// Order represents a placed order
type Order struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	OrderNumber   string        `json:"order_number" gorm:"uniqueIndex;not null"`
	Customer      CustomerInfo  `json:"customer" gorm:"embedded"`
	Items         []OrderItem   `json:"items" gorm:"foreignKey:OrderID"`
	Subtotal      int64         `json:"subtotal" gorm:"not null"`
	ShippingFee   int64         `json:"shipping_fee" gorm:"not null"`
	Total         int64         `json:"total" gorm:"not null"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"not null"`
	Status        OrderStatus   `json:"status" gorm:"not null;default:'Pending'"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// FormatOrderNumber renders the public order number for an id
func FormatOrderNumber(id uint) string {
	return fmt.Sprintf("ORD-%03d", id)
}

// ItemsFromCart converts cart lines into order lines, keeping the
// price snapshot taken when each item was added
func ItemsFromCart(c *cart.Cart) []OrderItem {
	items := make([]OrderItem, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, OrderItem{
			ProductID:       line.ProductID,
			Title:           line.Product.Title,
			TitleUrdu:       line.Product.TitleUrdu,
			SelectedVariant: line.SelectedVariant,
			Quantity:        line.Quantity,
			Price:           line.Price,
		})
	}
	return items
}
