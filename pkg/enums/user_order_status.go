package enums

import "fmt"

// UserOrderStatus tracks one participant's cart within a group order.
type UserOrderStatus string

const (
	UserOrderStatusDraft     UserOrderStatus = "draft"
	UserOrderStatusSubmitted UserOrderStatus = "submitted"
)

var validUserOrderStatuses = []UserOrderStatus{
	UserOrderStatusDraft,
	UserOrderStatusSubmitted,
}

// String implements fmt.Stringer.
func (s UserOrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known UserOrderStatus.
func (s UserOrderStatus) IsValid() bool {
	for _, candidate := range validUserOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseUserOrderStatus converts raw input into a UserOrderStatus.
func ParseUserOrderStatus(value string) (UserOrderStatus, error) {
	for _, candidate := range validUserOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user order status %q", value)
}
