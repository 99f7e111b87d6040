package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/storetrack-backend/internal/config"
	"github.com/heartmarshall/storetrack-backend/internal/service/auth"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Login(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error)
}

// AuthHandler serves the login and logout endpoints.
type AuthHandler struct {
	svc        authService
	cookieName string
	sessionTTL time.Duration
	log        *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, cfg config.AuthConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:        svc,
		cookieName: cfg.CookieName,
		sessionTTL: cfg.SessionTTL,
		log:        logger.With("handler", "auth"),
	}
}

type loginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login handles POST /login. Credentials arrive form-encoded; success sets
// the HttpOnly session cookie and returns the identity.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	result, err := h.svc.Login(r.Context(), auth.LoginInput{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	cookie := &http.Cookie{
		Name:     h.cookieName,
		Value:    result.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if h.sessionTTL > 0 {
		cookie.MaxAge = int(h.sessionTTL.Seconds())
	}
	http.SetCookie(w, cookie)

	writeJSON(w, http.StatusOK, loginResponse{
		Username: result.Username,
		Role:     result.Role.String(),
	})
}

// Logout handles GET /logout: clears the session cookie and redirects to
// the login form. Sessions are stateless tokens, so clearing the cookie is
// the whole operation.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginForm handles GET /login. The API has no HTML surface; the endpoint
// exists as the redirect target for anonymous page requests.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "login required"})
}
