package enums

import "fmt"

// GroupOrderStatus tracks the lifecycle of a shared ordering window.
type GroupOrderStatus string

const (
	GroupOrderStatusOpen      GroupOrderStatus = "open"
	GroupOrderStatusSubmitted GroupOrderStatus = "submitted"
	GroupOrderStatusClosed    GroupOrderStatus = "closed"
	GroupOrderStatusCanceled  GroupOrderStatus = "canceled"
)

var validGroupOrderStatuses = []GroupOrderStatus{
	GroupOrderStatusOpen,
	GroupOrderStatusSubmitted,
	GroupOrderStatusClosed,
	GroupOrderStatusCanceled,
}

// String implements fmt.Stringer.
func (s GroupOrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known GroupOrderStatus.
func (s GroupOrderStatus) IsValid() bool {
	for _, candidate := range validGroupOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseGroupOrderStatus converts raw input into a GroupOrderStatus.
func ParseGroupOrderStatus(value string) (GroupOrderStatus, error) {
	for _, candidate := range validGroupOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid group order status %q", value)
}
