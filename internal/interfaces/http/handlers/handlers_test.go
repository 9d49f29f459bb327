package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/boutique-storefront/internal/config"
	"github.com/your-org/boutique-storefront/internal/domain/account"
	"github.com/your-org/boutique-storefront/internal/domain/admin"
	"github.com/your-org/boutique-storefront/internal/domain/cart"
	"github.com/your-org/boutique-storefront/internal/domain/catalog"
	"github.com/your-org/boutique-storefront/internal/domain/checkout"
	"github.com/your-org/boutique-storefront/internal/domain/customer"
	"github.com/your-org/boutique-storefront/internal/domain/site"
	"github.com/your-org/boutique-storefront/internal/domain/wishlist"
	"github.com/your-org/boutique-storefront/internal/infrastructure/backend"
	redisdb "github.com/your-org/boutique-storefront/internal/infrastructure/database/redis"
	"github.com/your-org/boutique-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/boutique-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/boutique-storefront/internal/interfaces/http/routes"
	"github.com/your-org/boutique-storefront/internal/pkg/apperr"
	"github.com/your-org/boutique-storefront/internal/pkg/auth"
	"github.com/your-org/boutique-storefront/internal/pkg/flow"
)

const sessionCookie = "JSESSIONID"

// testEnv runs the real routes against a fake boutique backend
type testEnv struct {
	t       *testing.T
	router  *gin.Engine
	backend *http.ServeMux

	mu       sync.Mutex
	received map[string]*http.Request
	bodies   map[string][]byte
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := &testEnv{
		t:        t,
		backend:  http.NewServeMux(),
		received: make(map[string]*http.Request),
		bodies:   make(map[string][]byte),
	}
	srv := httptest.NewServer(e.backend)
	t.Cleanup(srv.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		App:     config.AppConfig{Name: "Boutique Storefront", Environment: "test"},
		Server:  config.ServerConfig{RequestTimeout: 5 * time.Second, MaxBodyBytes: 1 << 20},
		Backend: config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second, SessionCookie: sessionCookie, MaxIdleConns: 4},
		Flow:    config.FlowConfig{Secret: strings.Repeat("k", 32), TTL: 10 * time.Minute},
		Security: config.SecurityConfig{
			RateLimitPerMinute:     1000,
			RateLimitBurst:         1000,
			AuthRateLimitPerMinute: 1000,
		},
		Catalog: config.CatalogConfig{Colors: []string{"Maroon", "Gold"}},
	}

	client := backend.NewClient(cfg)
	flows := flow.NewManager(flow.NewMemoryStore(), cfg.Flow.TTL)

	deps := &routes.Deps{
		Services: &routes.Services{
			Catalog:   catalog.NewService(client, cfg),
			Cart:      cart.NewService(client),
			Wishlist:  wishlist.NewService(client),
			Checkout:  checkout.NewService(client, flows, nil, cfg),
			Account:   account.NewService(client, flows),
			Customer:  customer.NewService(client),
			Addresses: customer.NewAddressService(client),
			Admin:     admin.NewService(client),
			Site:      site.NewService(client),
		},
		Tickets:     handlers.NewFlowTickets(auth.NewTicketManager(cfg), cfg),
		RedisClient: redisdb.NewFromClient(rdb),
		Config:      cfg,
	}

	e.router = gin.New()
	e.router.Use(middleware.RequestID(), middleware.Session(sessionCookie))
	routes.SetupRoutes(e.router.Group("/api/v1"), deps)
	return e
}

// handle registers a fake backend endpoint that records what it received
func (e *testEnv) handle(pattern string, status int, body any) {
	e.backend.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		raw := new(bytes.Buffer)
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			_ = r.ParseForm()
		} else {
			_, _ = raw.ReadFrom(r.Body)
		}

		e.mu.Lock()
		e.received[pattern] = r
		e.bodies[pattern] = raw.Bytes()
		e.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

func (e *testEnv) requestTo(pattern string) (*http.Request, []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.received[pattern], e.bodies[pattern]
}

type option func(*http.Request)

func withSession() option {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "backend-session"}) }
}

func withCookies(cookies []*http.Cookie) option {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
}

func withFlowToken(token string) option {
	return func(r *http.Request) { r.Header.Set(middleware.FlowTokenHeader, token) }
}

func (e *testEnv) do(method, path string, body any, opts ...option) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func stubCheckoutBackend(e *testEnv, finalizeStatus int) {
	e.handle("GET /api/customer/addresses", http.StatusOK, []customer.Address{
		{ID: 1, FullName: "Asha Rao", City: "Pune", IsDefault: true},
	})
	e.handle("GET /api/payment/checkout-data", http.StatusOK, map[string]any{
		"cartItems": []map[string]any{
			{"id": 1, "product": map[string]any{"id": 9, "name": "Banarasi Saree", "price": 2999.5}, "quantity": 1},
		},
		"totalPrice":         2999.5,
		"addresses":          []customer.Address{{ID: 1, FullName: "Asha Rao"}},
		"stripeClientSecret": "pi_123_secret_abc",
		"publishableKey":     "pk_test_123",
	})
	if finalizeStatus == http.StatusOK {
		e.handle("POST /api/payment/finalize", http.StatusOK, map[string]string{"message": "Order placed successfully!"})
	} else {
		e.handle("POST /api/payment/finalize", finalizeStatus, map[string]string{"error": "database unavailable"})
	}
}

func TestCheckoutFlow(t *testing.T) {
	t.Run("CashOnDelivery", func(t *testing.T) {
		e := newTestEnv(t)
		stubCheckoutBackend(e, http.StatusOK)

		w := e.do(http.MethodPost, "/api/v1/checkout/address", gin.H{"addressId": 1}, withSession())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		ticket := w.Header().Get(middleware.FlowTokenHeader)
		require.NotEmpty(t, ticket)
		require.NotNil(t, findCookie(w, "sf_checkout"))

		w = e.do(http.MethodGet, "/api/v1/checkout/payment", nil, withSession(), withFlowToken(ticket))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, 2999.5, data["totalPrice"])
		assert.Equal(t, "pi_123_secret_abc", data["stripeClientSecret"])

		w = e.do(http.MethodPost, "/api/v1/checkout/finalize", gin.H{"paymentMode": "COD"}, withSession(), withFlowToken(ticket))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Order placed successfully!", decode(t, w)["message"])
		cleared := findCookie(w, "sf_checkout")
		require.NotNil(t, cleared)
		assert.Less(t, cleared.MaxAge, 0)

		_, body := e.requestTo("POST /api/payment/finalize")
		assert.JSONEq(t, `{"addressId":1,"paymentMode":"COD"}`, string(body))

		// the finished checkout cannot be replayed
		w = e.do(http.MethodPost, "/api/v1/checkout/finalize", gin.H{"paymentMode": "COD"}, withSession(), withFlowToken(ticket))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "/customer/addresses", decode(t, w)["redirect"])
	})

	t.Run("CardChargedButOrderNotRecorded", func(t *testing.T) {
		e := newTestEnv(t)
		stubCheckoutBackend(e, http.StatusInternalServerError)

		w := e.do(http.MethodPost, "/api/v1/checkout/address", gin.H{"addressId": 1}, withSession())
		require.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()

		w = e.do(http.MethodGet, "/api/v1/checkout/payment", nil, withSession(), withCookies(cookies))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = e.do(http.MethodPost, "/api/v1/checkout/finalize",
			gin.H{"paymentMode": "CARD", "stripeIntentId": "pi_123"}, withSession(), withCookies(cookies))
		assert.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, checkout.DegradedMessage, body["message"])
		assert.Equal(t, checkout.OutcomeDegraded, body["data"].(map[string]any)["status"])
	})

	t.Run("PaymentReloadResetsCheckout", func(t *testing.T) {
		e := newTestEnv(t)
		stubCheckoutBackend(e, http.StatusOK)

		w := e.do(http.MethodPost, "/api/v1/checkout/address", gin.H{"addressId": 1}, withSession())
		ticket := w.Header().Get(middleware.FlowTokenHeader)

		w = e.do(http.MethodGet, "/api/v1/checkout/payment", nil, withSession(), withFlowToken(ticket))
		require.Equal(t, http.StatusOK, w.Code)

		w = e.do(http.MethodGet, "/api/v1/checkout/payment", nil, withSession(), withFlowToken(ticket))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "redirect", decode(t, w)["kind"])
	})

	t.Run("RequiresSession", func(t *testing.T) {
		e := newTestEnv(t)

		w := e.do(http.MethodGet, "/api/v1/checkout/payment", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "/login?redirect=%2Fcheckout%2Fpayment", decode(t, w)["redirect"])
	})

	t.Run("ForeignTicketIgnored", func(t *testing.T) {
		e := newTestEnv(t)
		stubCheckoutBackend(e, http.StatusOK)

		w := e.do(http.MethodGet, "/api/v1/checkout/payment", nil, withSession(), withFlowToken("not-a-ticket"))
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRegistrationFlow(t *testing.T) {
	e := newTestEnv(t)
	e.handle("POST /api/auth/register", http.StatusOK, map[string]string{"message": "Registration successful. Please check your email for the OTP."})
	e.handle("POST /api/auth/confirm-otp", http.StatusOK, map[string]string{"message": "Account verified. You can now log in."})

	form := gin.H{
		"firstName":       "Asha",
		"lastName":        "Rao",
		"email":           "asha@example.com",
		"password":        "Saree@2024",
		"confirmPassword": "Saree@2024",
		"termsAccepted":   true,
	}
	w := e.do(http.MethodPost, "/api/v1/auth/register", form)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, account.StepConfirmOTP, data["next"])
	assert.Equal(t, account.OTPPolicy, data["otpPolicy"])
	cookies := w.Result().Cookies()
	require.NotNil(t, findCookie(w, "sf_registration"))

	w = e.do(http.MethodPost, "/api/v1/auth/confirm-otp", gin.H{"otp": "12 34-56"}, withCookies(cookies))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, account.StepLogin, decode(t, w)["data"].(map[string]any)["next"])

	req, _ := e.requestTo("POST /api/auth/confirm-otp")
	require.NotNil(t, req)
	assert.Equal(t, "asha@example.com", req.PostForm.Get("email"))
	assert.Equal(t, "123456", req.PostForm.Get("otp"))

	// the flow is gone once confirmed
	w = e.do(http.MethodPost, "/api/v1/auth/confirm-otp", gin.H{"otp": "123456"}, withCookies(cookies))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, account.StepRegister, decode(t, w)["redirect"])
}

func TestRegistrationRejectsWeakPassword(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodPost, "/api/v1/auth/register", gin.H{
		"firstName":       "Asha",
		"email":           "asha@example.com",
		"password":        "password",
		"confirmPassword": "password",
		"termsAccepted":   true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password does not meet security requirements.", decode(t, w)["error"])
	req, _ := e.requestTo("POST /api/auth/register")
	assert.Nil(t, req)
}

func TestLoginRelaysSessionCookie(t *testing.T) {
	e := newTestEnv(t)
	e.backend.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "fresh-session", Path: "/", HttpOnly: true})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"username":"asha","roles":[{"authority":"ROLE_USER"}]}`))
	})

	w := e.do(http.MethodPost, "/api/v1/auth/login?redirect=%2Fcheckout", gin.H{"username": "asha", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookie := findCookie(w, sessionCookie)
	require.NotNil(t, cookie)
	assert.Equal(t, "fresh-session", cookie.Value)
	assert.Equal(t, "/checkout", decode(t, w)["data"].(map[string]any)["redirect"])
}

func TestLoginRejectedCredentials(t *testing.T) {
	e := newTestEnv(t)
	e.handle("POST /api/auth/login", http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})

	w := e.do(http.MethodPost, "/api/v1/auth/login", gin.H{"username": "asha", "password": "wrong", "redirect": "/checkout"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Invalid username or password", body["error"])
	assert.Equal(t, string(apperr.KindBusiness), body["kind"])
	assert.NotContains(t, body, "redirect")
	assert.Nil(t, findCookie(w, sessionCookie))
}

func TestBackendSessionExpiry(t *testing.T) {
	e := newTestEnv(t)
	e.handle("GET /api/customer/profile", http.StatusUnauthorized, map[string]string{"error": "Session expired"})

	w := e.do(http.MethodGet, "/api/v1/customer/profile", nil, withSession())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Session expired", body["error"])
	assert.Equal(t, "/login?redirect=%2Fcustomer%2Fprofile", body["redirect"])
}

func TestBackendFailureIsGeneric(t *testing.T) {
	e := newTestEnv(t)
	e.handle("GET /api/cart", http.StatusInternalServerError, map[string]string{"error": "NullPointerException at CartService"})

	w := e.do(http.MethodGet, "/api/v1/cart", nil, withSession())
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "NullPointerException")
}

func TestProductListing(t *testing.T) {
	e := newTestEnv(t)
	e.handle("GET /api/products", http.StatusOK, map[string]any{
		"products": []map[string]any{
			{"id": 1, "name": "Silk Saree", "category": "Sarees", "price": 4000, "stockQuantity": 2},
			{"id": 2, "name": "Cotton Saree", "category": "Sarees", "price": 1500, "stockQuantity": 0},
			{"id": 3, "name": "Zari Saree", "category": "Sarees", "price": 2500, "stockQuantity": 5},
		},
		"categories": []string{"Sarees", "Kurtis"},
	})

	w := e.do(http.MethodGet, "/api/v1/products?category=Sarees&status=inStock&sort=priceAsc", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := decode(t, w)["data"].(map[string]any)
	products := data["products"].([]any)
	require.Len(t, products, 2)
	assert.Equal(t, float64(3), products[0].(map[string]any)["id"])
	assert.Equal(t, float64(1), products[1].(map[string]any)["id"])

	req, _ := e.requestTo("GET /api/products")
	assert.Equal(t, "Sarees", req.URL.Query().Get("category"))

	w = e.do(http.MethodGet, "/api/v1/products?sort=cheapest", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWishlistMoveToCart(t *testing.T) {
	e := newTestEnv(t)
	e.handle("POST /api/cart/add", http.StatusOK, map[string]string{"message": "Added to cart"})
	e.handle("DELETE /api/wishlist/{id}", http.StatusOK, map[string]string{"message": "Removed"})
	e.handle("GET /api/wishlist", http.StatusOK, []any{})

	w := e.do(http.MethodPost, "/api/v1/wishlist/7/move-to-cart", nil, withSession())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Item moved to cart.", decode(t, w)["message"])

	req, _ := e.requestTo("POST /api/cart/add")
	require.NotNil(t, req)
	assert.Equal(t, "7", req.PostForm.Get("productId"))
	assert.Equal(t, "1", req.PostForm.Get("quantity"))
}

func TestInvalidPathID(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodDelete, "/api/v1/cart/items/abc", nil, withSession())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid cart item ID", decode(t, w)["error"])
}

func TestPasswordStrength(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodPost, "/api/v1/auth/password-strength", gin.H{"password": "Saree@2024"})
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(5), data["score"])
	assert.Equal(t, float64(5), data["max"])
}
