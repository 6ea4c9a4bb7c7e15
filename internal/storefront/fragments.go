package storefront

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"bitykart/internal/catalog"
	"bitykart/internal/render"
	"bitykart/internal/session"
	"bitykart/internal/shopapi"
	"bitykart/pkg/kit"
)

const (
	msgSessionExpired = "Session expired. Please sign in again."
	msgCatalogFailed  = "Error loading products. Please try again."
	msgSignInOrders   = "Please sign in to view your orders."
	msgSignInProfile  = "Please sign in to view your profile."
)

// quantities snapshots the session's cart into a lookup the renderer
// uses, so one store read feeds every card in a fragment.
func (s *Server) quantities(r *http.Request, st session.State) render.QuantityFunc {
	entries, err := s.Cart.Entries(r.Context(), st.ID)
	if err != nil {
		s.Log.Error("load cart", zap.Error(err), zap.String("session", st.ID))
		return func(int64) int { return 0 }
	}

	byID := make(map[int64]int, len(entries))
	for _, e := range entries {
		byID[e.ProductID] = e.Quantity
	}
	return func(id int64) int { return byID[id] }
}

func (s *Server) handleCatalogFragment(w http.ResponseWriter, r *http.Request) {
	st := s.ensureSession(w, r)

	notice := ""
	if err := s.Catalog.Refresh(r.Context()); err != nil {
		if errors.Is(err, catalog.ErrStaleRefresh) {
			// A newer load finished first; the cached snapshot wins.
		} else {
			s.Log.Warn("catalog refresh", zap.Error(err))
			notice = msgCatalogFailed
		}
	}

	frag, err := s.Render.Catalog(s.Catalog.Products(), s.quantities(r, st), notice)
	if err != nil {
		s.Log.Error("render catalog", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteHTML(w, http.StatusOK, frag)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	st := s.ensureSession(w, r)
	term := r.URL.Query().Get("q")

	frag, err := s.Render.SearchResults(term, s.Catalog.Products(), s.quantities(r, st))
	if err != nil {
		s.Log.Error("render search", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteHTML(w, http.StatusOK, frag)
}

func (s *Server) handleCartFragment(w http.ResponseWriter, r *http.Request) {
	st := s.ensureSession(w, r)

	entries, err := s.Cart.Entries(r.Context(), st.ID)
	if err != nil {
		s.Log.Error("load cart", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	frag, err := s.Render.CartView(entries)
	if err != nil {
		s.Log.Error("render cart", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteHTML(w, http.StatusOK, frag)
}

func (s *Server) handleBadge(w http.ResponseWriter, r *http.Request) {
	st := s.ensureSession(w, r)

	count, err := s.Cart.ItemCount(r.Context(), st.ID)
	if err != nil {
		s.Log.Error("cart count", zap.Error(err))
		count = 0
	}

	frag, err := s.Render.Badge(count)
	if err != nil {
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteHTML(w, http.StatusOK, frag)
}

func (s *Server) handleOrdersFragment(w http.ResponseWriter, r *http.Request) {
	st := s.ensureSession(w, r)
	if !st.Authenticated() {
		kit.WriteError(w, r, http.StatusUnauthorized, msgSignInOrders, nil)
		return
	}

	orders, err := s.API.UserOrders(r.Context(), st.Token, st.UserID)
	if errors.Is(err, shopapi.ErrSessionExpired) {
		s.expireSession(w, r, st)
		return
	}
	if err != nil {
		// Degrade: render the fixed empty state instead of failing the
		// fragment.
		s.Log.Warn("load orders", zap.Error(err), zap.String("user", st.UserID))
		orders = nil
	}

	frag, rerr := s.Render.Orders(orders)
	if rerr != nil {
		s.Log.Error("render orders", zap.Error(rerr))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteHTML(w, http.StatusOK, frag)
}

func (s *Server) handleProfileFragment(w http.ResponseWriter, r *http.Request) {
	st := s.ensureSession(w, r)
	if !st.Authenticated() {
		kit.WriteError(w, r, http.StatusUnauthorized, msgSignInProfile, nil)
		return
	}

	u, err := s.API.Profile(r.Context(), st.Token, st.UserID)
	if errors.Is(err, shopapi.ErrSessionExpired) {
		s.expireSession(w, r, st)
		return
	}
	if err != nil {
		// Fall back to the session's copy of the user record.
		s.Log.Warn("load profile", zap.Error(err), zap.String("user", st.UserID))
		u = shopapi.User{ID: st.UserID, Name: st.Name, Email: st.Email}
	}

	frag, rerr := s.Render.Profile(u)
	if rerr != nil {
		s.Log.Error("render profile", zap.Error(rerr))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteHTML(w, http.StatusOK, frag)
}

// expireSession clears the local session state after the backend
// rejected the token, and tells the client to return to the default
// view with a visible message.
func (s *Server) expireSession(w http.ResponseWriter, r *http.Request, st session.State) {
	s.Sessions.Detach(st.ID)
	kit.WriteJSON(w, http.StatusUnauthorized, map[string]any{
		"message":  msgSessionExpired,
		"redirect": "/",
	})
}
