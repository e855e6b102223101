package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/enbat/horizon-server-go/internal/audit"
	apperrors "github.com/enbat/horizon-server-go/internal/errors"
	"github.com/enbat/horizon-server-go/internal/middleware"
	"github.com/enbat/horizon-server-go/internal/session"
)

var validate = validator.New()

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthHandler exposes the session operations: register, sign in, sign out,
// and the current session state.
type AuthHandler struct {
	sessions         *session.Manager
	loginRateLimiter *middleware.LoginRateLimiter
}

func NewAuthHandler(sessions *session.Manager, loginRateLimiter *middleware.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{
		sessions:         sessions,
		loginRateLimiter: loginRateLimiter,
	}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(h.loginRateLimiter.Handler).Post("/register", h.Register)
	r.With(h.loginRateLimiter.Handler).Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/session", h.Session)

	return r
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Register(r.Context(), req.Email, req.Password); err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("registration failed")
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventRegister, Email: req.Email})
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.sessions.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		audit.LogFromRequest(r, audit.Event{Type: audit.EventLoginFailure, Email: req.Email})
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventLoginSuccess, Email: req.Email})
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": token})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetSessionToken(r.Context())
	if token != "" {
		if err := h.sessions.SignOut(r.Context(), token); err != nil {
			log.Warn().Err(err).Msg("sign-out failed at identity service")
		}
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventLogout})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.GetSessionState(r.Context()))
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return req, false
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, apperrors.ValidationError("Email and a password of at least 6 characters are required"))
		return req, false
	}
	return req, true
}
