package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/aidar/task-manager-project/internal/domain"
	"github.com/aidar/task-manager-project/internal/middleware"
	"github.com/aidar/task-manager-project/internal/service"
	"github.com/aidar/task-manager-project/internal/view"
)

// AuthHandler обрабатывает страницы регистрации и входа
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Landing обрабатывает GET /
func (h *AuthHandler) Landing(w http.ResponseWriter, r *http.Request) {
	RespondWithHTML(w, http.StatusOK, view.Landing)
}

// LoginForm обрабатывает GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	RespondWithHTML(w, http.StatusOK, func(w io.Writer) error {
		return view.Login(w, view.LoginPage{})
	})
}

// Login обрабатывает POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.loginError(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.authService.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.loginError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		RespondWithHTML(w, http.StatusInternalServerError, func(w io.Writer) error {
			return view.Error(w, view.ErrorPage{Message: "Something went wrong, please try again"})
		})
		return
	}

	h.startSession(w, r, user)
}

// RegisterForm обрабатывает GET /register
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	RespondWithHTML(w, http.StatusOK, func(w io.Writer) error {
		return view.Register(w, view.RegisterPage{})
	})
}

// Register обрабатывает POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.registerError(w, http.StatusBadRequest, "Invalid form submission", "")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirm_password")

	if password != confirm {
		h.registerError(w, http.StatusBadRequest, "Passwords do not match", username)
		return
	}

	user, err := h.authService.Register(r.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.registerError(w, http.StatusBadRequest, "Username and password are required", username)
		case errors.Is(err, domain.ErrUsernameTaken):
			h.registerError(w, http.StatusConflict, "This username is already taken", username)
		default:
			RespondWithHTML(w, http.StatusInternalServerError, func(w io.Writer) error {
				return view.Error(w, view.ErrorPage{Message: "Something went wrong, please try again"})
			})
		}
		return
	}

	h.startSession(w, r, user)
}

// Logout обрабатывает GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// startSession выдает сессионный токен, ставит cookie и уводит на дашборд
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *domain.User) {
	token, err := h.authService.IssueSession(user)
	if err != nil {
		RespondWithHTML(w, http.StatusInternalServerError, func(w io.Writer) error {
			return view.Error(w, view.ErrorPage{Message: "Something went wrong, please try again"})
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *AuthHandler) loginError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithHTML(w, statusCode, func(w io.Writer) error {
		return view.Login(w, view.LoginPage{Error: message})
	})
}

func (h *AuthHandler) registerError(w http.ResponseWriter, statusCode int, message, username string) {
	RespondWithHTML(w, statusCode, func(w io.Writer) error {
		return view.Register(w, view.RegisterPage{Error: message, Username: username})
	})
}
