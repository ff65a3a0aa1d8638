package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grandline/theories/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*domain.User, error)
	profileFn  func(ctx context.Context, sessionUsername string) (*domain.User, []domain.Theory, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Profile(ctx context.Context, sessionUsername string) (*domain.User, []domain.Theory, error) {
	return s.profileFn(ctx, sessionUsername)
}

type stubSessions struct{}

func (stubSessions) Issue(username string) (string, error) { return "token-" + username, nil }
func (stubSessions) Verify(token string) (string, error) {
	if strings.HasPrefix(token, "token-") {
		return strings.TrimPrefix(token, "token-"), nil
	}
	return "", domain.ErrUnauthenticated
}
func (stubSessions) TTL() time.Duration { return time.Hour }

func newFormContext(e *echo.Echo, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func flashValue(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == flashCookie {
			msg, err := url.QueryUnescape(ck.Value)
			if err != nil {
				t.Fatalf("flash cookie not decodable: %v", err)
			}
			return msg
		}
	}
	return ""
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "session" {
			return ck
		}
	}
	return nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			if username != "Alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{Username: "alice"}, nil
		},
	}
	h := NewAuthHandler(stub, stubSessions{})

	c, rec := newFormContext(e, "/register", url.Values{"username": {"Alice"}, "password": {"secret"}})
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/profile/alice" {
		t.Fatalf("expected redirect to profile, got %q", loc)
	}
	ck := sessionCookie(rec)
	if ck == nil || ck.Value != "token-alice" {
		t.Fatalf("expected session cookie, got %+v", ck)
	}
	if msg := flashValue(t, rec); msg != "Registration Successful!" {
		t.Fatalf("unexpected flash: %q", msg)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, stubSessions{})

	c, rec := newFormContext(e, "/register", url.Values{"username": {"bob"}, "password": {"secret"}})
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/register" {
		t.Fatalf("expected redirect back to register, got %q", loc)
	}
	if msg := flashValue(t, rec); msg != "Username already exists" {
		t.Fatalf("unexpected flash: %q", msg)
	}
	if sessionCookie(rec) != nil {
		t.Fatalf("no session should be started on duplicate")
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return &domain.User{Username: "alice"}, nil
		},
	}
	h := NewAuthHandler(stub, stubSessions{})

	c, rec := newFormContext(e, "/login", url.Values{"username": {"Alice"}, "password": {"secret"}})
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/profile/alice" {
		t.Fatalf("expected redirect to profile, got %q", loc)
	}
	// The greeting uses the username as typed, not the stored lower-case form.
	if msg := flashValue(t, rec); msg != "Welcome, Alice" {
		t.Fatalf("unexpected flash: %q", msg)
	}
	if ck := sessionCookie(rec); ck == nil || ck.Value != "token-alice" {
		t.Fatalf("expected session cookie, got %+v", ck)
	}
}

func TestAuthHandler_Login_GenericFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, stubSessions{})

	// Unknown user and wrong password both come back as ErrInvalidCredentials
	// from the service; either way the page shows the same message.
	c, rec := newFormContext(e, "/login", url.Values{"username": {"ghost"}, "password": {"bad"}})
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect back to login, got %q", loc)
	}
	if msg := flashValue(t, rec); msg != "Incorrect Username and/or Password" {
		t.Fatalf("unexpected flash: %q", msg)
	}
	if sessionCookie(rec) != nil {
		t.Fatalf("no session should be started on failure")
	}
}

func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, stubSessions{})

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Logging out with no active session must not fault.
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to login, got %q", loc)
	}
	if msg := flashValue(t, rec); msg != "You have been logged out" {
		t.Fatalf("unexpected flash: %q", msg)
	}
	ck := sessionCookie(rec)
	if ck == nil || ck.MaxAge != -1 {
		t.Fatalf("expected expired session cookie, got %+v", ck)
	}
}
