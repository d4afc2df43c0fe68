package ordering

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
)

// RawStockEntry is one catalog line exactly as the backend reports it,
// keyed by its short code in the surrounding category map.
type RawStockEntry struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	InStock bool    `json:"inStock"`
}

// RawStock is the backend's live catalog payload, one code-keyed map per
// category bucket.
type RawStock struct {
	Meats     map[string]RawStockEntry `json:"meats"`
	Sauces    map[string]RawStockEntry `json:"sauces"`
	Garnishes map[string]RawStockEntry `json:"garnishes"`
	Extras    map[string]RawStockEntry `json:"extras"`
	Drinks    map[string]RawStockEntry `json:"drinks"`
	Desserts  map[string]RawStockEntry `json:"desserts"`
}

// FetchStock retrieves the live catalog. The stock endpoint sits behind the
// same anti-forgery gate as the cart, so every fetch performs a fresh token
// handshake first; nothing is cached on either side.
func (c *Client) FetchStock(ctx context.Context) (*RawStock, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, pkgerr("create cookie jar", err)
	}

	client := *c.httpClient
	client.Jar = jar

	token, err := c.fetchToken(ctx, &client)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(stockPath), nil)
	if err != nil {
		return nil, pkgerr("build stock request", err)
	}
	req.Header.Set(tokenHeader, token)

	resp, err := client.Do(req)
	if err != nil {
		return nil, pkgerr("execute stock request", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp, "stock")
	}

	var payload RawStock
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, pkgerr("decode stock response", err)
	}

	c.log(ctx, "fetch_stock", "done")
	return &payload, nil
}
