package storefront

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"bitykart/internal/shopapi"
	"bitykart/pkg/kit"
)

const (
	msgSignInOrder    = "Please sign in to place your order."
	msgEmptyCart      = "Your cart is empty."
	msgOrderFailed    = "Failed to place order. Please try again."
	msgOrderConfirmed = "Order placed successfully!"
)

// handlePlaceOrder serializes the cart into the order-placement shape
// and clears the cart only after the backend confirmed the order. Any
// failure leaves the cart exactly as it was.
func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	st := s.ensureSession(w, r)
	if !st.Authenticated() {
		kit.WriteError(w, r, http.StatusUnauthorized, msgSignInOrder, nil)
		return
	}

	entries, err := s.Cart.Entries(r.Context(), st.ID)
	if err != nil {
		s.Log.Error("load cart", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if len(entries) == 0 {
		kit.WriteError(w, r, http.StatusBadRequest, msgEmptyCart, nil)
		return
	}

	items := make([]shopapi.OrderItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, shopapi.OrderItem{
			ProductID:   e.ProductID,
			ProductName: e.Name,
			ImageURL:    e.ImageURL,
			Quantity:    e.Quantity,
			Price:       e.UnitPrice,
		})
	}

	total, err := s.Cart.TotalPrice(r.Context(), st.ID)
	if err != nil {
		s.Log.Error("cart total", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	order, err := s.API.PlaceOrder(r.Context(), st.Token, st.UserID, items, total)
	if errors.Is(err, shopapi.ErrSessionExpired) {
		s.expireSession(w, r, st)
		return
	}
	if err != nil {
		s.Log.Warn("place order", zap.Error(err), zap.String("user", st.UserID))
		kit.WriteError(w, r, http.StatusBadGateway, msgOrderFailed, nil)
		return
	}

	if err := s.Cart.Clear(r.Context(), st.ID); err != nil {
		s.Log.Error("clear cart after order", zap.Error(err), zap.Int64("order_id", order.ID))
	}

	badge, rerr := s.Render.Badge(0)
	if rerr != nil {
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": msgOrderConfirmed,
		"order":   order,
		"badge":   badge,
		"count":   0,
	})
}
