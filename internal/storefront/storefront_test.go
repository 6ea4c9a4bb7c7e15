package storefront_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"bitykart/internal/cart"
	"bitykart/internal/catalog"
	"bitykart/internal/devapi"
	"bitykart/internal/render"
	"bitykart/internal/session"
	"bitykart/internal/shopapi"
	"bitykart/internal/storefront"
)

// env runs a full stack: the storefront talking to an in-process
// backend, with a cookie jar so the browser session carries across
// requests.
type env struct {
	t      *testing.T
	front  *httptest.Server
	client *http.Client
}

func newEnv(t *testing.T) *env {
	t.Helper()
	log := zap.NewNop()

	api := &devapi.Server{
		Log:      log,
		Users:    devapi.NewUserStore(),
		Orders:   devapi.NewOrderStore(),
		Products: devapi.SeedProducts(),
		JWT:      devapi.NewTokenMaker("integration-secret"),
	}
	apiSrv := httptest.NewServer(devapi.NewHandler(api, devapi.HTTPDeps{Log: log, Service: "devapi"}))
	t.Cleanup(apiSrv.Close)

	s := &storefront.Server{
		Log:      log,
		Cart:     cart.NewStore(cart.NewMemBackend()),
		Catalog:  catalog.NewCache(catalog.NewClient(apiSrv.URL)),
		API:      shopapi.NewClient(apiSrv.URL),
		Sessions: session.NewManager(time.Hour),
		Render:   render.New(),
	}
	frontSrv := httptest.NewServer(storefront.NewHandler(s, storefront.HTTPDeps{Log: log, Service: "storefront"}))
	t.Cleanup(frontSrv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &env{t: t, front: frontSrv, client: &http.Client{Jar: jar}}
}

func (e *env) request(method, path, body string) (int, string) {
	e.t.Helper()

	var rd io.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	}
	req, err := http.NewRequest(method, e.front.URL+path, rd)
	if err != nil {
		e.t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.client.Do(req)
	if err != nil {
		e.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		e.t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(raw)
}

func (e *env) get(path string) (int, string) {
	e.t.Helper()
	return e.request(http.MethodGet, path, "")
}

func (e *env) register(name, email string) {
	e.t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":"supersecret"}`, name, email)
	status, resp := e.request(http.MethodPost, "/auth/register", body)
	if status != http.StatusCreated {
		e.t.Fatalf("register: status %d body %s", status, resp)
	}
}

type mutation struct {
	Controls string `json:"controls"`
	Badge    string `json:"badge"`
	Count    int    `json:"count"`
}

func (e *env) mutateCart(method, path, body string) mutation {
	e.t.Helper()
	status, resp := e.request(method, path, body)
	if status != http.StatusOK {
		e.t.Fatalf("%s %s: status %d body %s", method, path, status, resp)
	}
	var m mutation
	if err := json.Unmarshal([]byte(resp), &m); err != nil {
		e.t.Fatalf("decode mutation: %v (%s)", err, resp)
	}
	return m
}

func TestCatalogFragment(t *testing.T) {
	e := newEnv(t)

	status, body := e.get("/fragments/catalog")
	if status != http.StatusOK {
		t.Fatalf("status %d", status)
	}
	for _, want := range []string{"Masala Tea", `id="trending-products"`, `id="tea-products"`, "add-to-cart"} {
		if !strings.Contains(body, want) {
			t.Errorf("catalog fragment missing %q", want)
		}
	}
	if strings.Contains(body, "notice") {
		t.Errorf("healthy catalog load must not render a notice")
	}
}

func TestSearchFragment(t *testing.T) {
	e := newEnv(t)
	e.get("/fragments/catalog")

	status, body := e.get("/search?q=tea")
	if status != http.StatusOK {
		t.Fatalf("status %d", status)
	}
	if !strings.Contains(body, "Search Results for &quot;tea&quot;") {
		t.Errorf("missing heading in %s", body)
	}
	if !strings.Contains(body, "Masala Tea") || strings.Contains(body, "Filter Coffee") {
		t.Errorf("wrong result set: %s", body)
	}
}

func TestCartMutationFlow(t *testing.T) {
	e := newEnv(t)
	e.get("/fragments/catalog")

	// Snapshot comes from the cached catalog when only the id is sent.
	m := e.mutateCart(http.MethodPost, "/cart/items", `{"productId":1}`)
	if m.Count != 1 {
		t.Fatalf("count after add = %d", m.Count)
	}
	if !strings.Contains(m.Controls, `quantity-display">1<`) {
		t.Errorf("controls after add: %s", m.Controls)
	}

	m = e.mutateCart(http.MethodPost, "/cart/items/1/increment", "")
	if m.Count != 2 || !strings.Contains(m.Controls, `quantity-display">2<`) {
		t.Errorf("after increment: count=%d controls=%s", m.Count, m.Controls)
	}

	e.mutateCart(http.MethodPost, "/cart/items/1/decrement", "")
	m = e.mutateCart(http.MethodPost, "/cart/items/1/decrement", "")
	if m.Count != 0 {
		t.Errorf("count after decrement to zero = %d", m.Count)
	}
	if !strings.Contains(m.Controls, "add-to-cart") || !strings.Contains(m.Controls, `data-name="Masala Tea"`) {
		t.Errorf("removed product must render a re-addable button: %s", m.Controls)
	}

	status, body := e.get("/cart/badge")
	if status != http.StatusOK || !strings.Contains(body, `cart-count">0<`) {
		t.Errorf("badge: status=%d body=%s", status, body)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	e := newEnv(t)
	e.get("/fragments/catalog")

	e.mutateCart(http.MethodPost, "/cart/items", `{"productId":1}`)
	e.mutateCart(http.MethodPost, "/cart/items/1/increment", "")
	e.mutateCart(http.MethodPost, "/cart/items", `{"productId":9}`)

	m := e.mutateCart(http.MethodDelete, "/cart/items/1", "")
	if m.Count != 1 {
		t.Errorf("count after remove = %d", m.Count)
	}

	m = e.mutateCart(http.MethodPost, "/cart/clear", "")
	if m.Count != 0 {
		t.Errorf("count after clear = %d", m.Count)
	}

	_, body := e.get("/fragments/cart")
	if !strings.Contains(body, "Your cart is empty.") {
		t.Errorf("cart fragment after clear: %s", body)
	}
}

func TestCartFragmentShowsTotals(t *testing.T) {
	e := newEnv(t)
	e.get("/fragments/catalog")

	e.mutateCart(http.MethodPost, "/cart/items", `{"productId":1}`)
	e.mutateCart(http.MethodPost, "/cart/items/1/increment", "")
	e.mutateCart(http.MethodPost, "/cart/items", `{"productId":9}`)

	_, body := e.get("/fragments/cart")
	for _, want := range []string{"Masala Tea", "Almonds", "Total (3 item(s))", "&#8377;950"} {
		if !strings.Contains(body, want) {
			t.Errorf("cart fragment missing %q in %s", want, body)
		}
	}
}

func TestOrdersAndProfileRequireSignIn(t *testing.T) {
	e := newEnv(t)

	status, body := e.get("/fragments/orders")
	if status != http.StatusUnauthorized || !strings.Contains(body, "Please sign in to view your orders.") {
		t.Errorf("orders: status=%d body=%s", status, body)
	}

	status, body = e.get("/fragments/profile")
	if status != http.StatusUnauthorized || !strings.Contains(body, "Please sign in to view your profile.") {
		t.Errorf("profile: status=%d body=%s", status, body)
	}

	status, body = e.request(http.MethodPost, "/orders", "")
	if status != http.StatusUnauthorized || !strings.Contains(body, "Please sign in to place your order.") {
		t.Errorf("place order: status=%d body=%s", status, body)
	}
}

func TestRegisterLoginAndProfile(t *testing.T) {
	e := newEnv(t)

	body := `{"name":"Asha Rao","email":"asha@example.com","password":"supersecret"}`
	status, resp := e.request(http.MethodPost, "/auth/register", body)
	if status != http.StatusCreated {
		t.Fatalf("register: status %d body %s", status, resp)
	}
	if !strings.Contains(resp, "Welcome to Bity Kart, Asha!") {
		t.Errorf("register message: %s", resp)
	}

	status, resp = e.get("/fragments/profile")
	if status != http.StatusOK {
		t.Fatalf("profile: status %d body %s", status, resp)
	}
	if !strings.Contains(resp, `profile-display-name">Asha<`) || !strings.Contains(resp, "asha@example.com") {
		t.Errorf("profile fragment: %s", resp)
	}

	status, resp = e.request(http.MethodPost, "/auth/logout", "")
	if status != http.StatusOK || !strings.Contains(resp, "Logged out successfully!") {
		t.Fatalf("logout: status %d body %s", status, resp)
	}

	status, resp = e.request(http.MethodPost, "/auth/login", `{"email":"asha@example.com","password":"supersecret"}`)
	if status != http.StatusOK || !strings.Contains(resp, "Welcome back, Asha!") {
		t.Errorf("login: status %d body %s", status, resp)
	}
}

func TestLoginWithWrongPassword(t *testing.T) {
	e := newEnv(t)
	e.register("Asha Rao", "asha@example.com")
	e.request(http.MethodPost, "/auth/logout", "")

	status, resp := e.request(http.MethodPost, "/auth/login", `{"email":"asha@example.com","password":"wrong-password"}`)
	if status != http.StatusUnauthorized {
		t.Errorf("login with bad password: status %d body %s", status, resp)
	}
}

func TestCheckoutFlow(t *testing.T) {
	e := newEnv(t)
	e.get("/fragments/catalog")
	e.register("Asha Rao", "asha@example.com")

	// No orders yet: the backend's not-found answer renders as the
	// fixed empty state.
	status, body := e.get("/fragments/orders")
	if status != http.StatusOK || !strings.Contains(body, "No orders found.") {
		t.Fatalf("orders before checkout: status=%d body=%s", status, body)
	}

	e.mutateCart(http.MethodPost, "/cart/items", `{"productId":1}`)
	e.mutateCart(http.MethodPost, "/cart/items/1/increment", "")
	e.mutateCart(http.MethodPost, "/cart/items", `{"productId":9}`)

	status, body = e.request(http.MethodPost, "/orders", "")
	if status != http.StatusCreated {
		t.Fatalf("place order: status %d body %s", status, body)
	}
	if !strings.Contains(body, "Order placed successfully!") {
		t.Errorf("order message: %s", body)
	}
	if !strings.Contains(body, `"count":0`) {
		t.Errorf("order response must report an emptied cart: %s", body)
	}

	_, body = e.get("/fragments/cart")
	if !strings.Contains(body, "Your cart is empty.") {
		t.Errorf("cart after order: %s", body)
	}

	status, body = e.get("/fragments/orders")
	if status != http.StatusOK {
		t.Fatalf("orders after checkout: status %d", status)
	}
	for _, want := range []string{"Order #BK1001", "Masala Tea", "2 item(s)", "&#8377;950"} {
		if !strings.Contains(body, want) {
			t.Errorf("orders fragment missing %q in %s", want, body)
		}
	}
}

func TestPlaceOrderWithEmptyCart(t *testing.T) {
	e := newEnv(t)
	e.register("Asha Rao", "asha@example.com")

	status, body := e.request(http.MethodPost, "/orders", "")
	if status != http.StatusBadRequest || !strings.Contains(body, "Your cart is empty.") {
		t.Errorf("empty-cart order: status=%d body=%s", status, body)
	}
}

func TestLogoutEmptiesCart(t *testing.T) {
	e := newEnv(t)
	e.get("/fragments/catalog")
	e.register("Asha Rao", "asha@example.com")
	e.mutateCart(http.MethodPost, "/cart/items", `{"productId":1}`)

	e.request(http.MethodPost, "/auth/logout", "")

	status, body := e.get("/cart/badge")
	if status != http.StatusOK || !strings.Contains(body, `cart-count">0<`) {
		t.Errorf("badge after logout: status=%d body=%s", status, body)
	}
}

func TestSessionCarriesCartAcrossRequests(t *testing.T) {
	e := newEnv(t)
	e.get("/fragments/catalog")

	e.mutateCart(http.MethodPost, "/cart/items", `{"productId":1}`)

	status, body := e.get("/cart/badge")
	if status != http.StatusOK || !strings.Contains(body, `cart-count">1<`) {
		t.Errorf("badge: status=%d body=%s", status, body)
	}

	// A jarless client is a different visitor with its own cart.
	resp, err := http.Get(e.front.URL + "/cart/badge")
	if err != nil {
		t.Fatalf("anonymous badge: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), `cart-count">0<`) {
		t.Errorf("fresh visitor badge: %s", raw)
	}
}

func TestHomePage(t *testing.T) {
	e := newEnv(t)

	status, body := e.get("/")
	if status != http.StatusOK {
		t.Fatalf("status %d", status)
	}
	if !strings.Contains(body, "Bity Kart") {
		t.Errorf("home page: %s", body)
	}
}

func TestHealthEndpoints(t *testing.T) {
	e := newEnv(t)

	if status, _ := e.get("/healthz"); status != http.StatusOK {
		t.Errorf("healthz: %d", status)
	}
	if status, _ := e.get("/readyz"); status != http.StatusOK {
		t.Errorf("readyz: %d", status)
	}
}
