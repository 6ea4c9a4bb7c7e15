// Package storefront is the HTTP surface of the shop: it renders the
// page shell and its fragments, owns cart mutations, and brokers
// authentication and orders against the remote API.
package storefront

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bitykart/internal/cart"
	"bitykart/internal/catalog"
	"bitykart/internal/render"
	"bitykart/internal/session"
	"bitykart/internal/shopapi"
	"bitykart/pkg/kit"
)

type Server struct {
	Log      *zap.Logger
	Cart     *cart.Store
	Catalog  *catalog.Cache
	API      *shopapi.Client
	Sessions *session.Manager
	Render   *render.Renderer
}

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
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
	r.Get("/readyz", s.handleReady)

	r.Get("/", s.handleHome)
	r.Get("/fragments/catalog", s.handleCatalogFragment)
	r.Get("/fragments/cart", s.handleCartFragment)
	r.Get("/fragments/orders", s.handleOrdersFragment)
	r.Get("/fragments/profile", s.handleProfileFragment)
	r.Get("/search", s.handleSearch)

	r.Get("/cart/badge", s.handleBadge)
	r.Post("/cart/items", s.handleAddItem)
	r.Post("/cart/items/{id}/increment", s.handleIncrement)
	r.Post("/cart/items/{id}/decrement", s.handleDecrement)
	r.Delete("/cart/items/{id}", s.handleRemoveItem)
	r.Post("/cart/clear", s.handleClearCart)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)

	r.Post("/orders", s.handlePlaceOrder)

	return r
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.Cart.Ping(r.Context()); err != nil {
		s.Log.Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ensureSession resolves the visitor's session from the cookie,
// creating an anonymous one (and setting the cookie) on first contact.
// The session id is also the cart namespace.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) session.State {
	if c, err := r.Cookie(session.CookieName); err == nil {
		if st, ok := s.Sessions.Get(c.Value); ok {
			return st
		}
	}

	st := s.Sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    st.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return st
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
