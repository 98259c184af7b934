// internal/domain/order/entity_test.go
package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{StatusPending, StatusPacked, true},
		{StatusPending, StatusShipped, true},
		{StatusPending, StatusDelivered, true},
		{StatusPacked, StatusShipped, true},
		{StatusPacked, StatusDelivered, true},
		{StatusShipped, StatusDelivered, true},

		{StatusPending, StatusPending, false},
		{StatusPacked, StatusPending, false},
		{StatusShipped, StatusPacked, false},
		{StatusDelivered, StatusShipped, false},
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestCanTransitionToUnknownStatus(t *testing.T) {
	assert.False(t, StatusPending.CanTransitionTo("Cancelled"))
	assert.False(t, OrderStatus("Cancelled").CanTransitionTo(StatusDelivered))
}

func TestPaymentMethodIsValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentCOD, PaymentEasypaisa, PaymentJazzCash, PaymentBank} {
		assert.True(t, m.IsValid(), string(m))
	}
	assert.False(t, PaymentMethod("bitcoin").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD-001", FormatOrderNumber(1))
	assert.Equal(t, "ORD-042", FormatOrderNumber(42))
	assert.Equal(t, "ORD-1337", FormatOrderNumber(1337))
}
