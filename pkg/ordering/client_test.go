package ordering

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/maxscharwath/tacocrew-sub004/pkg/config"
	pkgerrors "github.com/maxscharwath/tacocrew-sub004/pkg/errors"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	client, err := NewClient(config.OrderingConfig{
		BaseURL: serverURL,
		Timeout: 5 * time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func serveToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"token":"` + token + `"}`))
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(config.OrderingConfig{}, nil); err == nil {
		t.Fatal("expected error for empty base url")
	}
}

func TestOpenSessionPerformsTokenHandshake(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		serveToken(w, "tok-1")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	session, err := client.OpenSession(context.Background())
	if err != nil {
		t.Fatalf("OpenSession returned error: %v", err)
	}
	if session.Token() != "tok-1" {
		t.Fatalf("token = %q, want tok-1", session.Token())
	}
}

func TestOpenSessionRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":""}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	if _, err := client.OpenSession(context.Background()); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestSessionCarriesCookieAndToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token":
			serveToken(w, "tok-2")
		case "/api/session/close":
			cookie, err := r.Cookie("session")
			if err != nil || cookie.Value != "abc123" {
				t.Error("session cookie did not travel with the request")
			}
			if got := r.Header.Get("X-Csrf-Token"); got != "tok-2" {
				t.Errorf("token header = %q, want tok-2", got)
			}
			if err := r.ParseForm(); err != nil {
				t.Errorf("parse form: %v", err)
			}
			if got := r.PostForm.Get("_token"); got != "tok-2" {
				t.Errorf("form _token = %q, want tok-2", got)
			}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	session, err := client.OpenSession(context.Background())
	if err != nil {
		t.Fatalf("OpenSession returned error: %v", err)
	}
	if err := client.CloseSession(context.Background(), session); err != nil {
		t.Fatalf("CloseSession returned error: %v", err)
	}
}

func TestFetchStockDecodesCatalog(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token":
			serveToken(w, "tok-3")
		case "/api/stock":
			if got := r.Header.Get("X-Csrf-Token"); got != "tok-3" {
				t.Errorf("token header = %q, want tok-3", got)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"meats": {"viande_hachee": {"name": "Viande hachée", "price": 2.5, "inStock": true}},
				"sauces": {"harissa": {"name": "Harissa", "price": 0, "inStock": false}}
			}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	stock, err := client.FetchStock(context.Background())
	if err != nil {
		t.Fatalf("FetchStock returned error: %v", err)
	}

	meat, ok := stock.Meats["viande_hachee"]
	if !ok {
		t.Fatal("missing meat entry")
	}
	if !meat.InStock || meat.Name != "Viande hachée" {
		t.Fatalf("unexpected meat entry: %+v", meat)
	}
	if sauce := stock.Sauces["harissa"]; sauce.InStock {
		t.Fatal("harissa should be out of stock")
	}
}

func TestAddTacoEncodesOrderForm(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token":
			serveToken(w, "tok-4")
		case "/api/cart/taco":
			if err := r.ParseForm(); err != nil {
				t.Fatalf("parse form: %v", err)
			}
			if got := r.PostForm.Get("size"); got != "L" {
				t.Errorf("size = %q, want L", got)
			}
			if got := r.PostForm.Get("meat[viande_hachee]"); got != "2" {
				t.Errorf("meat portion = %q, want 2", got)
			}
			if got := r.PostForm["sauce[]"]; len(got) != 2 {
				t.Errorf("sauces = %v, want two entries", got)
			}
			if got := r.PostForm.Get("qty"); got != "1" {
				t.Errorf("qty = %q, want default 1", got)
			}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	session, err := client.OpenSession(context.Background())
	if err != nil {
		t.Fatalf("OpenSession returned error: %v", err)
	}

	err = client.AddTaco(context.Background(), session, TacoParams{
		Size:   "L",
		Meats:  []MeatPortion{{Code: "viande_hachee", Qty: 2}},
		Sauces: []string{"harissa", "sauce_blanche"},
	})
	if err != nil {
		t.Fatalf("AddTaco returned error: %v", err)
	}
}

func TestCheckoutReturnsOrderID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token":
			serveToken(w, "tok-5")
		case "/api/checkout":
			if err := r.ParseForm(); err != nil {
				t.Fatalf("parse form: %v", err)
			}
			if got := r.PostForm.Get("reference"); got != "grp-20260831-x1" {
				t.Errorf("reference = %q", got)
			}
			_, _ = w.Write([]byte(`{"orderId": "ord-42", "total": "31.50"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	session, err := client.OpenSession(context.Background())
	if err != nil {
		t.Fatalf("OpenSession returned error: %v", err)
	}

	result, err := client.Checkout(context.Background(), session, CheckoutParams{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Phone:         "+41790000000",
		DeliveryType:  "pickup",
		CorrelationID: "grp-20260831-x1",
	})
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if result.OrderID != "ord-42" {
		t.Fatalf("order id = %q, want ord-42", result.OrderID)
	}
}

func TestBackendFailuresSurfaceAsUpstreamErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token":
			serveToken(w, "tok-6")
		default:
			http.Error(w, "cart rejected", http.StatusBadGateway)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	session, err := client.OpenSession(context.Background())
	if err != nil {
		t.Fatalf("OpenSession returned error: %v", err)
	}

	err = client.AddDrink(context.Background(), session, ItemParams{Code: "coca_cola", Qty: 1})
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
