// Package devapi is a self-contained implementation of the remote API
// the storefront consumes (users, products, orders). It backs local
// development and the integration tests; the production storefront
// points at the real backend instead.
package devapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bitykart/internal/catalog"
	"bitykart/pkg/kit"
)

const (
	maxBodyBytes = 1 << 20
	tokenTTL     = 24 * time.Hour

	loginLimitPerMin    = 5
	registerLimitPerMin = 3
	limitWindowSeconds  = 60
)

type Server struct {
	Log      *zap.Logger
	Users    *UserStore
	Orders   *OrderStore
	Products []catalog.Product
	JWT      *TokenMaker

	validate *validator.Validate
}

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	s.validate = validator.New()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))

	if deps.Registry != nil {
		metrics := kit.NewMetrics(deps.Registry)
		r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

		if deps.MetricsEnabled {
			r.With(kit.MetricsAuth(deps.MetricsToken)).
				Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
		}
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	loginLimiter := kit.NewIPRateLimiter(loginLimitPerMin, limitWindowSeconds)
	registerLimiter := kit.NewIPRateLimiter(registerLimitPerMin, limitWindowSeconds)

	r.With(registerLimiter.Middleware).Post("/users/register", s.handleRegister)
	r.With(loginLimiter.Middleware).Post("/users/login", s.handleLogin)

	r.Get("/products", s.handleProducts)

	r.Group(func(pr chi.Router) {
		pr.Use(s.authJWT)
		pr.Get("/users/{id}", s.handleProfile)
		pr.Post("/orders/place/{userId}", s.handlePlaceOrder)
		pr.Get("/orders/user/{userId}", s.handleUserOrders)
	})

	return r
}

type ctxKey string

const claimsKey ctxKey = "claims"

func (s *Server) authJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
			return
		}

		claims, err := s.JWT.Parse(strings.TrimPrefix(authz, "Bearer "))
		if err != nil || claims.UserID == "" {
			kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFrom(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey).(Claims)
	return c, ok
}

type registerReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type sessionResp struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.validate.Struct(req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid registration", map[string]any{"cause": err.Error()})
		return
	}

	u, err := s.Users.Create(req.Name, req.Email, req.Password)
	if err == ErrEmailExists {
		kit.WriteError(w, r, http.StatusConflict, err.Error(), nil)
		return
	}
	if err != nil {
		s.Log.Error("create user", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	s.writeSession(w, r, http.StatusCreated, u)
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.validate.Struct(req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "email and password required", nil)
		return
	}

	u, err := s.Users.Verify(req.Email, req.Password)
	if err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, ErrInvalidCredentials.Error(), nil)
		return
	}

	s.writeSession(w, r, http.StatusOK, u)
}

func (s *Server) writeSession(w http.ResponseWriter, r *http.Request, status int, u User) {
	tok, err := s.JWT.New(u.ID, u.Email, tokenTTL)
	if err != nil {
		s.Log.Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, status, sessionResp{User: u, Token: tok})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id := chi.URLParam(r, "id")

	if claims.UserID != id {
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		return
	}

	u, ok := s.Users.Get(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, u)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Products)
}

type placeOrderReq struct {
	Items       []OrderItem     `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	userID := chi.URLParam(r, "userId")

	if claims.UserID != userID {
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		return
	}

	var req placeOrderReq
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "items required", nil)
		return
	}
	for _, it := range req.Items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			kit.WriteError(w, r, http.StatusBadRequest, "bad item", nil)
			return
		}
	}

	// Fill denormalized name/image from the seeded catalog so the order
	// history renders without a second lookup.
	items := make([]OrderItem, len(req.Items))
	copy(items, req.Items)
	for i := range items {
		for _, p := range s.Products {
			if p.ID == items[i].ProductID {
				if items[i].ProductName == "" {
					items[i].ProductName = p.Name
				}
				if items[i].ImageURL == "" {
					items[i].ImageURL = p.ImageURL
				}
				break
			}
		}
	}

	o := s.Orders.Create(userID, items, req.TotalAmount)
	kit.WriteJSON(w, http.StatusCreated, o)
}

func (s *Server) handleUserOrders(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	userID := chi.URLParam(r, "userId")

	if claims.UserID != userID {
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		return
	}

	orders, ok := s.Orders.ByUser(userID)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "no orders", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, orders)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return false
	}
	return true
}
