package storefront

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bitykart/internal/render"
	"bitykart/internal/session"
	"bitykart/pkg/kit"
)

const maxBodyBytes = 1 << 20

// mutationResp is the contract of every cart mutation: the regenerated
// control fragment for the touched product plus the fresh badge, so
// every rendered instance of that product (trending, category section,
// search results) can be swapped to the same state.
type mutationResp struct {
	Controls template.HTML `json:"controls,omitempty"`
	Badge    template.HTML `json:"badge"`
	Count    int           `json:"count"`
}

type addItemReq struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	st := s.ensureSession(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if req.ProductID == 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "productId required", nil)
		return
	}

	// The snapshot is stored as given; if the caller sent only the id
	// and the product is in the cached catalog, take the snapshot from
	// there.
	if req.Name == "" {
		if p, ok := s.Catalog.Get(req.ProductID); ok {
			req.Name = p.Name
			req.Price = p.Price
			req.ImageURL = p.ImageURL
		}
	}

	if err := s.Cart.Add(r.Context(), st.ID, req.ProductID, req.Name, req.Price, req.ImageURL); err != nil {
		s.Log.Error("cart add", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	s.writeMutation(w, r, st, req.ProductID)
}

func (s *Server) handleIncrement(w http.ResponseWriter, r *http.Request) {
	s.mutateQuantity(w, r, s.Cart.Increment)
}

func (s *Server) handleDecrement(w http.ResponseWriter, r *http.Request) {
	s.mutateQuantity(w, r, s.Cart.Decrement)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	s.mutateQuantity(w, r, s.Cart.Remove)
}

// mutateQuantity runs one of the id-only cart operations. Unknown
// products are a no-op in the store, so the handler still answers with
// the (unchanged) control state rather than an error.
func (s *Server) mutateQuantity(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, ns string, productID int64) error) {
	st := s.ensureSession(w, r)

	id, ok := productIDParam(r)
	if !ok {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	if err := op(r.Context(), st.ID, id); err != nil {
		s.Log.Error("cart mutation", zap.Error(err), zap.Int64("product_id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	s.writeMutation(w, r, st, id)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	st := s.ensureSession(w, r)

	if err := s.Cart.Clear(r.Context(), st.ID); err != nil {
		s.Log.Error("cart clear", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	badge, err := s.Render.Badge(0)
	if err != nil {
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, mutationResp{Badge: badge, Count: 0})
}

// writeMutation renders the post-mutation control state and badge.
func (s *Server) writeMutation(w http.ResponseWriter, r *http.Request, st session.State, productID int64) {
	ctrl := s.controlFor(r, st, productID)

	controls, err := s.Render.CartControls(ctrl)
	if err != nil {
		s.Log.Error("render controls", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	count, err := s.Cart.ItemCount(r.Context(), st.ID)
	if err != nil {
		s.Log.Error("cart count", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	badge, err := s.Render.Badge(count)
	if err != nil {
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, mutationResp{Controls: controls, Badge: badge, Count: count})
}

// controlFor assembles the control data for a product from the freshest
// sources available: quantity from the store, the snapshot from the
// cart entry if present, else from the cached catalog.
func (s *Server) controlFor(r *http.Request, st session.State, productID int64) render.Control {
	ctrl := render.Control{ID: productID}

	entries, err := s.Cart.Entries(r.Context(), st.ID)
	if err == nil {
		for _, e := range entries {
			if e.ProductID == productID {
				ctrl.Name = e.Name
				ctrl.Price = e.UnitPrice.String()
				ctrl.ImageURL = e.ImageURL
				ctrl.Quantity = e.Quantity
				return ctrl
			}
		}
	}

	if p, ok := s.Catalog.Get(productID); ok {
		ctrl.Name = p.Name
		ctrl.Price = p.Price.String()
		ctrl.ImageURL = p.ImageURL
	}
	return ctrl
}

func productIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id != 0
}
