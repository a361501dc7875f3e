// Package handlers maps HTTP routes onto the validate/mutate/redirect cycle
// of the application and carries the session machinery.
package handlers

import (
	"context"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"finhub/internal/logger"
	"finhub/internal/models"
	"finhub/internal/storage"

	"go.uber.org/zap"
)

// Context key type to avoid collisions.
type contextKey string

const (
	// UserContextKey is the context key for the authenticated user.
	UserContextKey contextKey = "user"
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "session"
	// SessionDuration is how long sessions last (30 days).
	SessionDuration = 30 * 24 * time.Hour
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db           *storage.DB
	templateDir  string
	chartPath    string
	secureCookie bool
	log          *zap.SugaredLogger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *storage.DB, templateDir, chartPath string, secureCookie bool) *Handlers {
	return &Handlers{
		db:           db,
		templateDir:  templateDir,
		chartPath:    chartPath,
		secureCookie: secureCookie,
		log:          logger.Get(),
	}
}

// GetUserFromContext retrieves the authenticated user from request context.
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserContextKey).(*models.User); ok {
		return user
	}
	return nil
}

// AuthMiddleware wraps handlers to require authentication. It also
// implements rolling sessions: once a session is past the halfway point of
// its lifetime it is automatically renewed.
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			setFlash(w, flashError, "Please log in to continue")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		sessionInfo, err := h.db.ValidateSessionWithInfo(cookie.Value)
		if err != nil {
			h.clearSessionCookie(w)
			setFlash(w, flashError, "Please log in to continue")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		now := time.Now()
		timeUntilExpiry := sessionInfo.ExpiresAt.Sub(now)
		halfSessionDuration := SessionDuration / 2

		if timeUntilExpiry < halfSessionDuration {
			newExpiresAt := now.Add(SessionDuration)
			if err := h.db.RenewSession(cookie.Value, newExpiresAt); err == nil {
				h.setSessionCookie(w, cookie.Value)
			}
			// If renewal fails, just continue with the current session.
		}

		ctx := context.WithValue(r.Context(), UserContextKey, sessionInfo.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireOwner enforces that the {username} path segment names the session's
// current user. On mismatch it flashes a notice and redirects to the current
// user's own dashboard, returning nil.
func (h *Handlers) requireOwner(w http.ResponseWriter, r *http.Request) *models.User {
	user := GetUserFromContext(r)
	if user == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return nil
	}
	if r.PathValue("username") != user.Username {
		setFlash(w, flashError, "You can only view your own page")
		http.Redirect(w, r, "/"+user.Username, http.StatusFound)
		return nil
	}
	return user
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// page wraps every view model with the data the base template needs.
type page struct {
	Flash       *Flash
	CurrentUser *models.User
	Data        any
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, viewName string, data any) {
	tmpl, err := template.ParseFiles(
		filepath.Join(h.templateDir, "base.html"),
		filepath.Join(h.templateDir, viewName),
	)
	if err != nil {
		h.log.Errorw("template parse failed", "view", viewName, "error", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	p := page{
		Flash:       popFlash(w, r),
		CurrentUser: GetUserFromContext(r),
		Data:        data,
	}
	if err := tmpl.ExecuteTemplate(w, "base.html", p); err != nil {
		h.log.Errorw("template execution failed", "view", viewName, "error", err)
	}
}
