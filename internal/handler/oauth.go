package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/bedirhan/todo-backend/internal/models"
	"github.com/bedirhan/todo-backend/internal/repository"
	"github.com/markbates/goth/gothic"
)

// BeginGoogleAuth handles GET /api/auth/google.
func (h *AuthHandler) BeginGoogleAuth(w http.ResponseWriter, r *http.Request) {
	//gothic looks for a provider query by default, force google
	q := r.URL.Query()
	q.Add("provider", "google")
	r.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(w, r)
}

// GoogleCallback handles GET /api/auth/google/callback. First-time visitors
// get an account with an unusable random password, so the record can only be
// used through OAuth unless they register a password separately.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), gothUser.Email)
	if errors.Is(err, repository.ErrNotFound) {
		hashed, hashErr := hashPassword(randomSecret())
		if hashErr != nil {
			h.internalError(w, "password_hash_failed", hashErr)
			return
		}
		user = models.User{
			Email:        gothUser.Email,
			PasswordHash: hashed,
			Role:         models.RoleUser,
		}
		if createErr := h.users.Create(r.Context(), &user); createErr != nil && !errors.Is(createErr, repository.ErrEmailTaken) {
			h.internalError(w, "user_create_failed", createErr)
			return
		}
	} else if err != nil {
		h.internalError(w, "user_lookup_failed", err)
		return
	}

	tokenString, err := h.tokens.Issue(user.Email, user.Role)
	if err != nil {
		h.internalError(w, "token_issue_failed", err)
		return
	}

	//token is ready - set cookie and send the user back to the frontend
	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true, //not visible to JS
		//Secure: true, //enable it for HTTPS in production
	})
	http.Redirect(w, r, h.frontendURL, http.StatusSeeOther)
}

func randomSecret() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
