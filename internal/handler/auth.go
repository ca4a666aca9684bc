package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bedirhan/todo-backend/internal/models"
	"github.com/bedirhan/todo-backend/internal/repository"
	"github.com/bedirhan/todo-backend/internal/token"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler covers registration, login and the authenticated identity
// endpoint.
type AuthHandler struct {
	users       repository.UserStore
	tokens      *token.Service
	frontendURL string
}

func NewAuthHandler(users repository.UserStore, tokens *token.Service, frontendURL string) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, frontendURL: frontendURL}
}

func (h *AuthHandler) Routes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Get("/google", h.BeginGoogleAuth)
	r.Get("/google/callback", h.GoogleCallback)
	r.With(AuthMiddleware(h.tokens)).Get("/me", h.Me)
}

// hashPassword generates a bcrypt hash of the plain-text password.
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// checkPasswordHash compares a bcrypt password hash with a plain-text password.
func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register handles POST /api/auth/register. Duplicate emails answer 409; the
// unique index on users.email backs the existence check up under concurrent
// registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if fieldErrors := checkRequest(req); fieldErrors != nil {
		writeValidationError(w, fieldErrors)
		return
	}

	exists, err := h.users.ExistsByEmail(r.Context(), req.Email)
	if err != nil {
		h.internalError(w, "user_lookup_failed", err)
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		h.internalError(w, "password_hash_failed", err)
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	if err := h.users.Create(r.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}
		h.internalError(w, "user_create_failed", err)
		return
	}

	tokenString, err := h.tokens.Issue(user.Email, user.Role)
	if err != nil {
		h.internalError(w, "token_issue_failed", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, models.AuthResponse{Token: tokenString})
}

// Login handles POST /api/auth/login. Unknown email and wrong password get
// the same answer so callers cannot probe which addresses are registered.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if fieldErrors := checkRequest(req); fieldErrors != nil {
		writeValidationError(w, fieldErrors)
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.internalError(w, "user_lookup_failed", err)
		return
	}

	if !checkPasswordHash(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	tokenString, err := h.tokens.Issue(user.Email, user.Role)
	if err != nil {
		h.internalError(w, "token_issue_failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.AuthResponse{Token: tokenString})
}

// Me handles GET /api/auth/me and echoes the verified identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{
		"email": claims.Subject,
		"role":  claims.Role,
	})
}

func (h *AuthHandler) internalError(w http.ResponseWriter, event string, err error) {
	slog.Error(event, "error", err)
	writeError(w, http.StatusInternalServerError, "Unexpected server error")
}
