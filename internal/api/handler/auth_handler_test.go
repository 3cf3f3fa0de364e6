package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/taskdeck-api/internal/core/domain"
)

type stubAuthService struct {
	signUpUser  *domain.User
	signUpErr   error
	signInUser  *domain.User
	signInToken string
	signInErr   error
	signedOut   []string
	users       []domain.User
}

func (s *stubAuthService) SignUp(context.Context, string, string, string) (*domain.User, error) {
	return s.signUpUser, s.signUpErr
}

func (s *stubAuthService) SignIn(context.Context, string, string) (*domain.User, string, time.Time, error) {
	if s.signInErr != nil {
		return nil, "", time.Time{}, s.signInErr
	}
	return s.signInUser, s.signInToken, time.Now().Add(7 * 24 * time.Hour), nil
}

func (s *stubAuthService) SignOut(_ context.Context, token string) error {
	s.signedOut = append(s.signedOut, token)
	return nil
}

func (s *stubAuthService) Verify(context.Context, string) (*domain.Identity, error) {
	return nil, domain.ErrUnauthenticated
}

func (s *stubAuthService) ListUsers(context.Context) ([]domain.User, error) {
	return s.users, nil
}

func newHandlerContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_SignUp_Success(t *testing.T) {
	svc := &stubAuthService{signUpUser: &domain.User{
		ID: "u-1", Email: "alice@x.com", Name: "Alice", PasswordHash: "bcrypt-stuff",
	}}
	h := NewAuthHandler(svc, false)

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/signup",
		`{"email":"alice@x.com","name":"Alice","password":"secret1"}`)

	if err := h.SignUp(c); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success=true, got %v", resp["success"])
	}
	if strings.Contains(rec.Body.String(), "bcrypt-stuff") {
		t.Fatalf("response leaked the password hash: %s", rec.Body.String())
	}
}

func TestAuthHandler_SignUp_ValidationRejectsBeforeService(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	cases := []struct {
		name string
		body string
	}{
		{"short password", `{"email":"a@x.com","name":"Al","password":"abc"}`},
		{"bad email", `{"email":"not-an-email","name":"Al","password":"secret1"}`},
		{"short name", `{"email":"a@x.com","name":"A","password":"secret1"}`},
	}
	for _, tc := range cases {
		c, _ := newHandlerContext(t, http.MethodPost, "/auth/signup", tc.body)
		err := h.SignUp(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", tc.name, err)
		}
	}
}

func TestAuthHandler_SignIn_SetsSessionCookie(t *testing.T) {
	svc := &stubAuthService{
		signInUser:  &domain.User{ID: "u-1", Email: "alice@x.com", Name: "Alice"},
		signInToken: "signed.jwt.token",
	}
	h := NewAuthHandler(svc, true)

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/signin",
		`{"email":"alice@x.com","password":"secret1"}`)

	if err := h.SignIn(c); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "session_token" || cookie.Value != "signed.jwt.token" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatalf("cookie must be HTTP-only")
	}
	if !cookie.Secure {
		t.Fatalf("cookie must be Secure in production")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie must be SameSite=Lax")
	}
	if cookie.MaxAge <= 0 {
		t.Fatalf("cookie must carry a positive max-age, got %d", cookie.MaxAge)
	}
}

func TestAuthHandler_SignIn_BadCredentialsPassThrough(t *testing.T) {
	svc := &stubAuthService{signInErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc, false)

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/signin",
		`{"email":"ghost@x.com","password":"whatever"}`)

	if err := h.SignIn(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie must be set on failed sign-in")
	}
}

func TestAuthHandler_SignOut_RevokesAndClearsCookie(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, false)

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/signout", "")
	c.Set("identity", domain.Identity{UserID: "u-1"})
	c.Set("session_token", "the-token")

	if err := h.SignOut(c); err != nil {
		t.Fatalf("SignOut returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(svc.signedOut) != 1 || svc.signedOut[0] != "the-token" {
		t.Fatalf("session not revoked: %v", svc.signedOut)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 || cookies[0].Value != "" {
		t.Fatalf("expected clearing cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, rec := newHandlerContext(t, http.MethodGet, "/auth/me", "")
	c.Set("identity", domain.Identity{UserID: "u-1", Email: "alice@x.com", Name: "Alice"})

	if err := h.Me(c); err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	var identity domain.Identity
	if err := json.Unmarshal(rec.Body.Bytes(), &identity); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if identity.UserID != "u-1" || identity.Email != "alice@x.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, _ := newHandlerContext(t, http.MethodGet, "/auth/me", "")
	if err := h.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthHandler_ListUsers_OmitsPasswordHashes(t *testing.T) {
	svc := &stubAuthService{users: []domain.User{
		{ID: "u-2", Email: "bob@x.com", Name: "Bob", PasswordHash: "hash-b", CreatedAt: time.Now()},
		{ID: "u-1", Email: "alice@x.com", Name: "Alice", PasswordHash: "hash-a", CreatedAt: time.Now().Add(-time.Hour)},
	}}
	h := NewAuthHandler(svc, false)

	c, rec := newHandlerContext(t, http.MethodGet, "/users", "")
	if err := h.ListUsers(c); err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}

	body := rec.Body.String()
	if strings.Contains(body, "hash-a") || strings.Contains(body, "hash-b") {
		t.Fatalf("directory leaked password hashes: %s", body)
	}

	var resp listUsersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(resp.Users) != 2 || resp.Users[0].ID != "u-2" {
		t.Fatalf("unexpected directory: %+v", resp.Users)
	}
}
