package handlers

import (
	"errors"
	"net/http"
	"time"

	"finhub/internal/apperrors"
	"finhub/internal/auth"
	"finhub/internal/forms"
	"finhub/internal/models"
)

// LoginViewModel holds data for the login page.
type LoginViewModel struct {
	Error    string
	Username string
}

// RegisterViewModel holds data for the registration page.
type RegisterViewModel struct {
	Error string
	Form  *forms.RegisterForm
}

// LoginForm renders the login page. An already authenticated visitor is sent
// straight to their dashboard.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if user, err := h.db.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, "/"+user.Username, http.StatusFound)
			return
		}
	}
	h.render(w, r, "login.html", LoginViewModel{})
}

// authenticate resolves a username/password pair to a user. Unknown users
// and wrong passwords both fail with ErrInvalidCredentials.
func (h *Handlers) authenticate(username, password string) (*models.User, error) {
	user, err := h.db.GetUserByUsername(username)
	if err != nil || !auth.CheckPassword(password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// Login handles the login form submission.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, "login.html", LoginViewModel{Error: "Invalid form submission"})
		return
	}

	form := forms.NewLoginForm(r.Form)
	if err := form.Validate(); err != nil {
		h.render(w, r, "login.html", LoginViewModel{Error: err.Error(), Username: form.Username})
		return
	}

	user, err := h.authenticate(form.Username, form.Password)
	if err != nil {
		setFlash(w, flashError, "Invalid username or password")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		h.log.Errorw("failed to generate session token", "error", err)
		h.render(w, r, "login.html", LoginViewModel{Error: "An error occurred. Please try again."})
		return
	}

	expiresAt := time.Now().Add(SessionDuration)
	if err := h.db.CreateSession(token, user.ID, expiresAt); err != nil {
		h.log.Errorw("failed to create session", "error", err)
		h.render(w, r, "login.html", LoginViewModel{Error: "An error occurred. Please try again."})
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/"+user.Username, http.StatusFound)
}

// Logout destroys the current session.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.db.DeleteSession(cookie.Value); err != nil {
			h.log.Errorw("failed to delete session", "error", err)
		}
	}
	h.clearSessionCookie(w)
	setFlash(w, flashSuccess, "You have been logged out")
	http.Redirect(w, r, "/", http.StatusFound)
}

// RegisterForm renders the registration page.
func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.html", RegisterViewModel{Form: &forms.RegisterForm{}})
}

// Register handles the registration form submission. The submitted password
// is hashed before anything is stored.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, "register.html", RegisterViewModel{Error: "Invalid form submission", Form: &forms.RegisterForm{}})
		return
	}

	form := forms.NewRegisterForm(r.Form)
	if err := form.Validate(); err != nil {
		h.render(w, r, "register.html", RegisterViewModel{Error: err.Error(), Form: form})
		return
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		h.log.Errorw("failed to hash password", "error", err)
		h.render(w, r, "register.html", RegisterViewModel{Error: "An error occurred. Please try again.", Form: form})
		return
	}

	if _, err := h.db.CreateUser(form.Username, form.Name, hash); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUsername) {
			h.render(w, r, "register.html", RegisterViewModel{Error: "Username already taken", Form: form})
			return
		}
		h.log.Errorw("failed to create user", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setFlash(w, flashSuccess, "User registered successfully")
	http.Redirect(w, r, "/", http.StatusFound)
}
