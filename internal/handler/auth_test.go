package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bedirhan/todo-backend/internal/models"
	"github.com/bedirhan/todo-backend/internal/token"
)

const (
	testEmail    = "user@example.com"
	testPassword = "hunter2!"
)

func register(t *testing.T, h http.Handler) models.AuthResponse {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/api/auth/register",
		`{"email":"`+testEmail+`","password":"`+testPassword+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var resp models.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding auth response: %v", err)
	}
	return resp
}

func TestRegisterIssuesToken(t *testing.T) {
	h, _, users := newTestServer()

	resp := register(t, h)
	if resp.Token == "" {
		t.Fatal("register returned no token")
	}

	// Token carries exactly the identity claims.
	claims, err := token.NewService("test-secret", time.Hour).Parse(resp.Token)
	if err != nil {
		t.Fatalf("parsing issued token: %v", err)
	}
	if claims.Subject != testEmail {
		t.Errorf("subject: got %q, want %q", claims.Subject, testEmail)
	}
	if claims.Role != models.RoleUser {
		t.Errorf("role: got %q, want %q", claims.Role, models.RoleUser)
	}

	// Plaintext is never stored.
	u, err := users.FindByEmail(context.Background(), testEmail)
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if u.PasswordHash == testPassword || u.PasswordHash == "" {
		t.Errorf("password stored without hashing")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, _, users := newTestServer()
	register(t, h)

	before, err := users.FindByEmail(context.Background(), testEmail)
	if err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, h, http.MethodPost, "/api/auth/register",
		`{"email":"`+testEmail+`","password":"other-password"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: got %d, want %d", rec.Code, http.StatusConflict)
	}

	after, err := users.FindByEmail(context.Background(), testEmail)
	if err != nil {
		t.Fatal(err)
	}
	if after.PasswordHash != before.PasswordHash {
		t.Error("duplicate registration must not touch the existing record")
	}
}

func TestLoginSuccess(t *testing.T) {
	h, _, _ := newTestServer()
	register(t, h)

	rec := doRequest(t, h, http.MethodPost, "/api/auth/login",
		`{"email":"`+testEmail+`","password":"`+testPassword+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp models.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Token == "" {
		t.Fatal("login returned no token")
	}
}

// Wrong password and unknown email must be indistinguishable to the caller.
func TestLoginFailuresAreUniform(t *testing.T) {
	h, _, _ := newTestServer()
	register(t, h)

	wrongPassword := doRequest(t, h, http.MethodPost, "/api/auth/login",
		`{"email":"`+testEmail+`","password":"nope"}`)
	unknownEmail := doRequest(t, h, http.MethodPost, "/api/auth/login",
		`{"email":"nobody@example.com","password":"`+testPassword+`"}`)

	if wrongPassword.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: got %d, want %d", wrongPassword.Code, http.StatusUnauthorized)
	}
	if unknownEmail.Code != wrongPassword.Code {
		t.Errorf("status differs: unknown email %d, wrong password %d", unknownEmail.Code, wrongPassword.Code)
	}

	a, b := decodeError(t, wrongPassword), decodeError(t, unknownEmail)
	if a.Message != b.Message || a.Error != b.Error {
		t.Errorf("bodies differ: %+v vs %+v", a, b)
	}
}

func TestMeRequiresValidToken(t *testing.T) {
	h, _, _ := newTestServer()
	resp := register(t, h)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("me: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), testEmail) {
		t.Errorf("me body missing email: %s", rec.Body.String())
	}

	if rec := doRequest(t, h, http.MethodGet, "/api/auth/me", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("me without token: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("me with garbage token: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
