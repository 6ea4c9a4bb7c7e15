package storefront

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"bitykart/internal/render"
	"bitykart/internal/shopapi"
	"bitykart/pkg/kit"
)

const (
	msgLoginFailed    = "Login failed. Please try again."
	msgRegisterFailed = "Registration failed. Please try again."
	msgLoggedOut      = "Logged out successfully!"
)

type authResp struct {
	Message string       `json:"message"`
	User    shopapi.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	st := s.ensureSession(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req shopapi.Registration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	sess, err := s.API.Register(r.Context(), req)
	if err != nil {
		s.writeAuthError(w, r, err, msgRegisterFailed)
		return
	}

	s.Sessions.Attach(st.ID, sess.User.ID, sess.User.Name, sess.User.Email, sess.Token)
	kit.WriteJSON(w, http.StatusCreated, authResp{
		Message: "Welcome to Bity Kart, " + render.FirstName(sess.User.Name) + "!",
		User:    sess.User,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	st := s.ensureSession(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req shopapi.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	sess, err := s.API.Login(r.Context(), req)
	if err != nil {
		s.writeAuthError(w, r, err, msgLoginFailed)
		return
	}

	s.Sessions.Attach(st.ID, sess.User.ID, sess.User.Name, sess.User.Email, sess.Token)
	kit.WriteJSON(w, http.StatusOK, authResp{
		Message: "Welcome back, " + render.FirstName(sess.User.Name) + "!",
		User:    sess.User,
	})
}

// handleLogout destroys the session and empties its cart; the cart
// namespace is the session id, so a fresh visit starts clean.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	st := s.ensureSession(w, r)

	if err := s.Cart.Clear(r.Context(), st.ID); err != nil {
		s.Log.Error("clear cart on logout", zap.Error(err))
	}
	s.Sessions.Destroy(st.ID)
	s.clearSessionCookie(w)

	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  msgLoggedOut,
		"redirect": "/",
	})
}

// writeAuthError surfaces the backend's own message when it sent one
// (wrong password, duplicate email), and a fixed fallback otherwise.
func (s *Server) writeAuthError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var apiErr *shopapi.APIError
	if errors.As(err, &apiErr) {
		kit.WriteError(w, r, apiErr.Status, apiErr.Message, nil)
		return
	}
	if errors.Is(err, shopapi.ErrSessionExpired) {
		kit.WriteError(w, r, http.StatusUnauthorized, msgSessionExpired, nil)
		return
	}

	s.Log.Warn("auth call failed", zap.Error(err))
	kit.WriteError(w, r, http.StatusBadGateway, fallback, nil)
}
