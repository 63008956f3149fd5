package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

type stubUserService struct {
	listFn func(ctx context.Context) ([]domain.User, error)
	getFn  func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) { return s.listFn(ctx) }
func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func TestUserHandler_List_StripsPasswords(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		listFn: func(context.Context) ([]domain.User, error) {
			return []domain.User{
				{ID: "1", Name: "John Admin", Email: "admin@test.com", Role: "admin", PasswordHash: "sekret"},
			}, nil
		},
	}
	h := NewUserHandler(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "sekret") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaks credentials: %s", rec.Body.String())
	}

	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 1 || users[0]["email"] != "admin@test.com" || users[0]["role"] != "admin" {
		t.Fatalf("unexpected payload: %+v", users)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_Login_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "admin@test.com" || password != "admin123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "1", Name: "John Admin", Email: email, Role: "admin"}, nil
		},
	}
	h := NewUserHandler(nil, stub)

	body := strings.NewReader(`{"email":"admin@test.com","password":"admin123"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("token missing: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password leaked in login response")
	}
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewUserHandler(nil, stub)

	body := strings.NewReader(`{"email":"admin@test.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserHandler_Login_MalformedBody(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			t.Fatalf("service must not be called")
			return "", nil, nil
		},
	}
	h := NewUserHandler(nil, stub)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); !errors.Is(err, domain.ErrMalformedRequest) {
		t.Fatalf("expected ErrMalformedRequest, got %v", err)
	}
}
