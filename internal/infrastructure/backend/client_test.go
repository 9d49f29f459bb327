package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/boutique-storefront/internal/config"
	"github.com/your-org/boutique-storefront/internal/domain/catalog"
	"github.com/your-org/boutique-storefront/internal/domain/checkout"
	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&config.Config{Backend: config.BackendConfig{
		BaseURL:       srv.URL,
		Timeout:       2 * time.Second,
		SessionCookie: "JSESSIONID",
		MaxIdleConns:  4,
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_RelaysSessionCookie(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("JSESSIONID")
		if err != nil || cookie.Value != "abc123" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Please log in"})
			return
		}
		assert.Equal(t, "/api/cart", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"items": []map[string]any{{"id": 1, "quantity": 2, "product": map[string]any{"id": 9, "price": 500}}},
			"total": 1000,
		})
	})

	_, err := client.GetCart(context.Background())
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	cart, err := client.GetCart(WithSession(context.Background(), "abc123"))
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(9), cart.Items[0].Product.ID)
	assert.Equal(t, 1000.0, cart.Total)
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		kind       apperr.Kind
		wantStatus int
		message    string
	}{
		{"business error text", 400, `{"error":"Your cart is empty."}`, apperr.KindBusiness, 400, "Your cart is empty."},
		{"message field fallback", 404, `{"message":"Product not found"}`, apperr.KindBusiness, 404, "Product not found"},
		{"no body uses status text", 409, ``, apperr.KindBusiness, 409, "Conflict"},
		{"unauthorized", 401, `{"error":"Invalid username or password"}`, apperr.KindUnauthorized, 401, "Invalid username or password"},
		{"forbidden", 403, ``, apperr.KindForbidden, 403, "You do not have access to this area."},
		{"server error is hidden", 500, `{"error":"NullPointerException at line 42"}`, apperr.KindInfrastructure, 502, apperr.GenericInfrastructureMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.CheckoutData(context.Background())
			require.Error(t, err)
			appErr := apperr.As(err)
			assert.Equal(t, tt.kind, appErr.Kind)
			assert.Equal(t, tt.wantStatus, appErr.Status)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestClient_UnparsableSuccessIsInfrastructure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "<html>maintenance</html>")
	})

	_, err := client.ListProducts(context.Background(), "")
	assert.True(t, apperr.Is(err, apperr.KindInfrastructure))
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(&config.Config{Backend: config.BackendConfig{BaseURL: srv.URL, Timeout: time.Second, SessionCookie: "JSESSIONID"}})

	_, err := client.Categories(context.Background())
	assert.True(t, apperr.Is(err, apperr.KindInfrastructure))
	assert.Error(t, client.Ping(context.Background()))
}

func TestClient_CanceledContext(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetWishlist(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_ListProducts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Sarees", r.URL.Query().Get("category"))
		writeJSON(w, http.StatusOK, map[string]any{
			"products":         []map[string]any{{"id": 1, "name": "Silk Saree", "price": 1000, "discountPercent": 10, "imageUrl": "/img/1.jpg"}},
			"selectedCategory": "Sarees",
			"categories":       []string{"Sarees", "Kurtis"},
		})
	})

	listing, err := client.ListProducts(context.Background(), " Sarees ")
	require.NoError(t, err)
	require.Len(t, listing.Products, 1)
	assert.Equal(t, "/img/1.jpg", listing.Products[0].ImageURL)
	assert.Equal(t, 900.0, listing.Products[0].EffectivePrice())
	assert.Equal(t, []string{"Sarees", "Kurtis"}, listing.Categories)
}

func TestClient_FormAndQueryEncoding(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cart/add":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "7", r.PostForm.Get("productId"))
			assert.Equal(t, "2", r.PostForm.Get("quantity"))
			writeJSON(w, http.StatusOK, map[string]string{"message": "Product added to cart!"})
		case "/api/cart/items/3":
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "0", r.URL.Query().Get("quantity"))
			writeJSON(w, http.StatusOK, map[string]string{"message": "Item removed."})
		case "/api/admin/orders/5/status":
			assert.Equal(t, "SHIPPED", r.URL.Query().Get("newStatus"))
			writeJSON(w, http.StatusOK, map[string]string{"message": "Status updated."})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	msg, err := client.AddToCart(ctx, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, "Product added to cart!", msg)

	msg, err = client.UpdateCartItem(ctx, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, "Item removed.", msg)

	msg, err = client.UpdateOrderStatus(ctx, 5, "SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, "Status updated.", msg)
}

func TestClient_LoginReturnsCookies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("password") != "Silk@2024" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "fresh", Path: "/", HttpOnly: true})
		writeJSON(w, http.StatusOK, map[string]any{
			"username": r.PostForm.Get("username"),
			"roles":    []map[string]string{{"authority": "ROLE_USER"}},
		})
	})
	ctx := context.Background()

	session, cookies, err := client.Login(ctx, "meera@example.com", "Silk@2024")
	require.NoError(t, err)
	assert.Equal(t, "meera@example.com", session.Username)
	assert.True(t, session.HasRole("USER"))
	require.Len(t, cookies, 1)
	assert.Equal(t, "fresh", cookies[0].Value)

	_, _, err = client.Login(ctx, "meera@example.com", "wrong")
	appErr := apperr.As(err)
	assert.Equal(t, apperr.KindUnauthorized, appErr.Kind)
	assert.Equal(t, "Invalid username or password", appErr.Message)
}

func TestClient_FinalizeOrderBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(4), body["addressId"])
		assert.Equal(t, "COD", body["paymentMode"])
		_, hasIntent := body["stripeIntentId"]
		assert.False(t, hasIntent)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Order placed successfully via COD!"})
	})

	msg, err := client.FinalizeOrder(context.Background(), checkout.FinalizeRequest{AddressID: 4, PaymentMode: checkout.PaymentModeCOD})
	require.NoError(t, err)
	assert.Equal(t, "Order placed successfully via COD!", msg)
}

func TestClient_NoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.DeleteAddress(context.Background(), 3))
	assert.NoError(t, client.DeleteContactMessage(context.Background(), 8))
}

func TestClient_SubmitReview(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/12/review", r.URL.Path)
		var body catalog.ReviewRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 4, body.Rating)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Review submitted!"})
	})

	msg, err := client.SubmitReview(context.Background(), 12, catalog.ReviewRequest{Rating: 4, Comment: "Soft fabric"})
	require.NoError(t, err)
	assert.Equal(t, "Review submitted!", msg)
}
