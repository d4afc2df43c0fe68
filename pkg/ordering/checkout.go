package ordering

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// CheckoutParams carries the customer, delivery and tracking fields the
// backend's final order form requires.
type CheckoutParams struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	DeliveryType  string
	AddressLine1  string
	City          string
	PostalCode    string
	RequestedAt   *time.Time
	CorrelationID string
}

// CheckoutResult is the backend's confirmation of a placed order.
type CheckoutResult struct {
	OrderID string `json:"orderId"`
	Total   string `json:"total"`
}

// Checkout submits the session cart as a final order. A success response
// means the backend accepted the order; there is no way to unwind it.
func (c *Client) Checkout(ctx context.Context, session *Session, params CheckoutParams) (*CheckoutResult, error) {
	form := url.Values{}
	form.Set("_token", session.Token())
	form.Set("firstname", params.FirstName)
	form.Set("lastname", params.LastName)
	form.Set("email", params.Email)
	form.Set("phone", params.Phone)
	form.Set("delivery_type", params.DeliveryType)
	form.Set("reference", params.CorrelationID)
	if params.AddressLine1 != "" {
		form.Set("address", params.AddressLine1)
		form.Set("city", params.City)
		form.Set("postal_code", params.PostalCode)
	}
	if params.RequestedAt != nil {
		form.Set("requested_time", params.RequestedAt.Format(time.RFC3339))
	}

	resp, err := c.postForm(ctx, session, checkoutPath, form, "checkout")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var result CheckoutResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, pkgerr("decode checkout response", err)
	}
	if result.OrderID == "" {
		return nil, pkgerr("checkout response", fmt.Errorf("missing order id"))
	}

	c.log(ctx, "checkout", "done")
	return &result, nil
}
