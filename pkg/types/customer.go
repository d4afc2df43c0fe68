package types

import (
	"time"

	"github.com/maxscharwath/tacocrew-sub004/pkg/enums"
)

// Customer is the contact block forwarded to the ordering backend at checkout.
type Customer struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
}

// DeliveryAddress is the drop-off location for delivery orders.
type DeliveryAddress struct {
	Line1      string `json:"line1" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

// Delivery carries the fulfillment choice for the whole group order.
type Delivery struct {
	Type        enums.DeliveryType `json:"type" validate:"required"`
	Address     *DeliveryAddress   `json:"address,omitempty"`
	RequestedAt time.Time          `json:"requested_at" validate:"required"`
}
