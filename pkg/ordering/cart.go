package ordering

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// MeatPortion is one meat code with its portion count inside a taco.
type MeatPortion struct {
	Code string
	Qty  int
}

// TacoParams describes one taco line the way the backend's order form
// expects it: codes, not ids.
type TacoParams struct {
	Size      string
	Meats     []MeatPortion
	Sauces    []string
	Garnishes []string
	Note      string
	Qty       int
}

// ExtraParams describes one extra (side) line.
type ExtraParams struct {
	Code       string
	Qty        int
	FreeSauces []string
}

// ItemParams describes one drink or dessert line.
type ItemParams struct {
	Code string
	Qty  int
}

func lineQty(qty int) string {
	if qty < 1 {
		qty = 1
	}
	return strconv.Itoa(qty)
}

// AddTaco posts one taco line into the session cart.
func (c *Client) AddTaco(ctx context.Context, session *Session, params TacoParams) error {
	form := url.Values{}
	form.Set("_token", session.Token())
	form.Set("size", params.Size)
	form.Set("qty", lineQty(params.Qty))
	if params.Note != "" {
		form.Set("note", params.Note)
	}
	for _, meat := range params.Meats {
		form.Set(fmt.Sprintf("meat[%s]", meat.Code), lineQty(meat.Qty))
	}
	for _, sauce := range params.Sauces {
		form.Add("sauce[]", sauce)
	}
	for _, garnish := range params.Garnishes {
		form.Add("garnish[]", garnish)
	}

	resp, err := c.postForm(ctx, session, tacoPath, form, "add_taco")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	c.log(ctx, "add_taco", "done")
	return nil
}

// AddExtra posts one extra line into the session cart.
func (c *Client) AddExtra(ctx context.Context, session *Session, params ExtraParams) error {
	form := url.Values{}
	form.Set("_token", session.Token())
	form.Set("code", params.Code)
	form.Set("qty", lineQty(params.Qty))
	for _, sauce := range params.FreeSauces {
		form.Add("free_sauce[]", sauce)
	}

	resp, err := c.postForm(ctx, session, extraPath, form, "add_extra")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	c.log(ctx, "add_extra", "done")
	return nil
}

// AddDrink posts one drink line into the session cart.
func (c *Client) AddDrink(ctx context.Context, session *Session, params ItemParams) error {
	return c.addSimpleLine(ctx, session, drinkPath, "add_drink", params)
}

// AddDessert posts one dessert line into the session cart.
func (c *Client) AddDessert(ctx context.Context, session *Session, params ItemParams) error {
	return c.addSimpleLine(ctx, session, dessertPath, "add_dessert", params)
}

func (c *Client) addSimpleLine(ctx context.Context, session *Session, path, op string, params ItemParams) error {
	form := url.Values{}
	form.Set("_token", session.Token())
	form.Set("code", params.Code)
	form.Set("qty", lineQty(params.Qty))

	resp, err := c.postForm(ctx, session, path, form, op)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	c.log(ctx, op, "done")
	return nil
}
