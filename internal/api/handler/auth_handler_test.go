package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rasulmamishov/portfolio-api/internal/api"
	"github.com/rasulmamishov/portfolio-api/internal/api/handler"
	"github.com/rasulmamishov/portfolio-api/internal/api/middleware"
	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

type stubAuthService struct {
	loginIn  ports.LoginInput
	loginErr error

	regUsername, regEmail, regPassword string
	regErr                             error

	currentID string
}

func (s *stubAuthService) Login(_ context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	s.loginIn = in
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &ports.AuthResult{
		Token: "tok",
		User:  domain.PublicUser{ID: "1", Username: "alice", Email: "alice@example.com", Role: domain.RoleUser},
	}, nil
}

func (s *stubAuthService) Register(_ context.Context, username, email, password string) (*ports.AuthResult, error) {
	s.regUsername, s.regEmail, s.regPassword = username, email, password
	if s.regErr != nil {
		return nil, s.regErr
	}
	return &ports.AuthResult{
		Token: "tok",
		User:  domain.PublicUser{ID: "2", Username: username, Email: email, Role: domain.RoleUser},
	}, nil
}

func (s *stubAuthService) CurrentUser(_ context.Context, id string) (*domain.PublicUser, error) {
	s.currentID = id
	if id != "1" {
		return nil, domain.ErrUserNotFound
	}
	return &domain.PublicUser{ID: "1", Username: "alice", Role: domain.RoleUser}, nil
}

type stubGate struct {
	adminErr error
}

func (g *stubGate) Authenticate(_ context.Context, authorization string) (*domain.Principal, error) {
	if authorization == "" {
		return nil, domain.ErrTokenMissing
	}
	return &domain.Principal{UserID: "1", Username: "alice", Role: domain.RoleUser}, nil
}

func (g *stubGate) AuthorizeAdmin(ctx context.Context, authorization string) (*domain.Principal, error) {
	p, err := g.Authenticate(ctx, authorization)
	if err != nil {
		return nil, err
	}
	if g.adminErr != nil {
		return nil, g.adminErr
	}
	return p, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	e.Validator = handler.NewValidator()
	e.IPExtractor = echo.ExtractIPDirect()
	return e
}

func do(e *echo.Echo, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

func TestLogin_AcceptsEmailField(t *testing.T) {
	svc := &stubAuthService{}
	e := newEcho()
	e.POST("/login", handler.NewAuthHandler(svc).Login)

	rec := do(e, http.MethodPost, "/login", `{"email":"alice@example.com","password":"secret1"}`,
		echo.HeaderXRealIP, "203.0.113.9")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.loginIn.Identifier != "alice@example.com" {
		t.Fatalf("expected email as identifier, got %q", svc.loginIn.Identifier)
	}
	// httptest requests come from 192.0.2.1; the header is client-controlled.
	if svc.loginIn.ClientIP != "192.0.2.1" {
		t.Fatalf("expected peer address as client ip, got %q", svc.loginIn.ClientIP)
	}

	var body struct {
		Message string         `json:"message"`
		Token   string         `json:"token"`
		User    map[string]any `json:"user"`
	}
	decode(t, rec, &body)
	if body.Message != "Login successful" || body.Token != "tok" {
		t.Fatalf("unexpected body %+v", body)
	}
	if _, leaked := body.User["password_hash"]; leaked {
		t.Fatal("user payload must not carry the password hash")
	}
}

func TestLogin_IdentifierWinsOverOtherFields(t *testing.T) {
	svc := &stubAuthService{}
	e := newEcho()
	e.POST("/login", handler.NewAuthHandler(svc).Login)

	do(e, http.MethodPost, "/login", `{"identifier":"alice","email":"x@example.com","username":"bob","password":"p"}`)
	if svc.loginIn.Identifier != "alice" {
		t.Fatalf("expected identifier field to win, got %q", svc.loginIn.Identifier)
	}

	do(e, http.MethodPost, "/login", `{"username":"bob","password":"p"}`)
	if svc.loginIn.Identifier != "bob" {
		t.Fatalf("expected username fallback, got %q", svc.loginIn.Identifier)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	e := newEcho()
	e.POST("/login", handler.NewAuthHandler(svc).Login)

	rec := do(e, http.MethodPost, "/login", `{"identifier":"alice","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["error"] != domain.ErrInvalidCredentials.Error() {
		t.Fatalf("unexpected error %q", body["error"])
	}
}

func TestLogin_Throttled(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrTooManyAttempts}
	e := newEcho()
	e.POST("/login", handler.NewAuthHandler(svc).Login)

	rec := do(e, http.MethodPost, "/login", `{"identifier":"alice","password":"wrong"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestLogin_MalformedBody(t *testing.T) {
	e := newEcho()
	e.POST("/login", handler.NewAuthHandler(&stubAuthService{}).Login)

	rec := do(e, http.MethodPost, "/login", `{"identifier":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["error"] != "invalid payload" {
		t.Fatalf("unexpected error %q", body["error"])
	}
}

func TestRegister_IgnoresRoleInBody(t *testing.T) {
	svc := &stubAuthService{}
	e := newEcho()
	e.POST("/register", handler.NewAuthHandler(svc).Register)

	rec := do(e, http.MethodPost, "/register",
		`{"username":"mallory","email":"mallory@example.com","password":"secret1","role":"admin"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.regUsername != "mallory" || svc.regEmail != "mallory@example.com" || svc.regPassword != "secret1" {
		t.Fatalf("unexpected register args %q %q %q", svc.regUsername, svc.regEmail, svc.regPassword)
	}

	var body struct {
		Message string            `json:"message"`
		User    domain.PublicUser `json:"user"`
	}
	decode(t, rec, &body)
	if body.Message != "Registration successful" || body.User.Role != domain.RoleUser {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestRegister_InvalidEmailFormat(t *testing.T) {
	svc := &stubAuthService{}
	e := newEcho()
	e.POST("/register", handler.NewAuthHandler(svc).Register)

	rec := do(e, http.MethodPost, "/register", `{"username":"bob","email":"not-an-email","password":"secret1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.regUsername != "" {
		t.Fatal("service must not be called on validation failure")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc := &stubAuthService{regErr: domain.ErrUserExists}
	e := newEcho()
	e.POST("/register", handler.NewAuthHandler(svc).Register)

	rec := do(e, http.MethodPost, "/register", `{"username":"bob","email":"bob@example.com","password":"secret1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMe_UsesPrincipalFromMiddleware(t *testing.T) {
	svc := &stubAuthService{}
	gate := &stubGate{}
	e := newEcho()
	e.GET("/me", handler.NewAuthHandler(svc).Me, middleware.Auth(gate))

	rec := do(e, http.MethodGet, "/me", "", echo.HeaderAuthorization, "Bearer tok")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.currentID != "1" {
		t.Fatalf("expected lookup of subject 1, got %q", svc.currentID)
	}

	rec = do(e, http.MethodGet, "/me", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}
