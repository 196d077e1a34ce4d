package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/itemboard/itemboard-be/internal/auth"
	"github.com/itemboard/itemboard-be/internal/services"
	"github.com/itemboard/itemboard-be/internal/session"
)

// AuthHandler handles HTTP requests for registration, login and the
// current-principal lookup.
type AuthHandler struct {
	service    services.AuthServiceProvider
	sessions   *session.Store
	tokenTTL   time.Duration
	production bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider, sessions *session.Store, tokenTTL time.Duration, production bool) *AuthHandler {
	return &AuthHandler{
		service:    service,
		sessions:   sessions,
		tokenTTL:   tokenTTL,
		production: production,
	}
}

// SignupPayload defines the structure for registration requests.
type SignupPayload struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ValidatePayload defines the structure for the real-time field check.
type ValidatePayload struct {
	Field    string `json:"field"`
	Value    string `json:"value"`
	Password string `json:"password"`
}

// Signup handles new account registration.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	result, err := h.service.Register(payload.Username, payload.Password, payload.ConfirmPassword)
	if err != nil {
		writeError(w, err, "Server error during registration")
		return
	}

	h.setAuthCookies(w, result.Token)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":          true,
		"message":          "User registered successfully",
		"token":            result.Token,
		"passwordStrength": result.Strength,
		"redirectUrl":      "/login",
	})
}

// Login handles authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	result, err := h.service.Authenticate(payload.Username, payload.Password)
	if err != nil {
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		writeError(w, err, "Server error during login")
		return
	}

	h.setAuthCookies(w, result.Token)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  fmt.Sprintf("Hello, %s!", result.Account.Username),
		"token":    result.Token,
		"username": result.Account.Username,
	})
}

// Logout clears the auth cookies and drops the session activity record.
// The token itself stays valid until its expiry; there is no revocation.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		h.sessions.Drop(cookie.Value)
	}
	h.clearAuthCookies(w)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logout successful",
	})
}

// Me returns the account behind the verified token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Could not retrieve user from token",
		})
		return
	}

	account, err := h.service.CurrentPrincipal(claims.UserID)
	if err != nil {
		log.Warn().Err(err).Str("account_id", claims.UserID).Msg("Account from token not found")
		writeError(w, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    account,
	})
}

// ValidateField runs the single-field rule subset for real-time feedback.
func (h *AuthHandler) ValidateField(w http.ResponseWriter, r *http.Request) {
	var payload ValidatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	messages := h.service.ValidateField(payload.Field, payload.Value, payload.Password)
	if messages == nil {
		messages = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"field":   payload.Field,
		"errors":  messages,
	})
}

// setAuthCookies sets the token cookie and starts a fresh session flow.
func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	sessionID := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}

func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{"token", session.CookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.production,
			SameSite: http.SameSiteStrictMode,
			Path:     "/",
		})
	}
}
