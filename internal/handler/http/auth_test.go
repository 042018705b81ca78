package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/domain"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/service"
	apperrors "github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/errors"
)

// ============================================================================
// Mock Authenticator
// ============================================================================

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Register(ctx context.Context, input service.RegisterInput) (*domain.Profile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockAuthenticator) Login(ctx context.Context, input service.LoginInput) (*service.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *mockAuthenticator) CurrentUser(ctx context.Context, token string) (*domain.Profile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func setupAuthRouter(auth *mockAuthenticator) *chi.Mux {
	handler := NewAuthHandler(auth, testLogger())
	r := chi.NewRouter()
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Get("/me", handler.Me)
	})
	return r
}

// ============================================================================
// POST /api/v1/auth/register
// ============================================================================

func TestRegister_Success(t *testing.T) {
	auth := new(mockAuthenticator)
	router := setupAuthRouter(auth)

	profile := &domain.Profile{Name: "Dinesh", Email: "dinesh@example.com"}
	auth.On("Register", mock.Anything, mock.AnythingOfType("service.RegisterInput")).Return(profile, nil)

	body, _ := json.Marshal(map[string]string{
		"name":     "Dinesh",
		"email":    "dinesh@example.com",
		"password": "pipes-and-fittings",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	auth.AssertExpectations(t)
}

func TestRegister_InvalidEmail(t *testing.T) {
	auth := new(mockAuthenticator)
	router := setupAuthRouter(auth)

	body, _ := json.Marshal(map[string]string{
		"name":     "Dinesh",
		"email":    "not-an-email",
		"password": "pipes-and-fittings",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	auth.AssertNotCalled(t, "Register")
}

func TestRegister_DuplicateEmail_Returns409(t *testing.T) {
	auth := new(mockAuthenticator)
	router := setupAuthRouter(auth)

	auth.On("Register", mock.Anything, mock.AnythingOfType("service.RegisterInput")).
		Return(nil, apperrors.AlreadyExists("user", "email", "dinesh@example.com"))

	body, _ := json.Marshal(map[string]string{
		"name":     "Dinesh",
		"email":    "dinesh@example.com",
		"password": "pipes-and-fittings",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)
}

// ============================================================================
// POST /api/v1/auth/login
// ============================================================================

func TestLogin_Success(t *testing.T) {
	auth := new(mockAuthenticator)
	router := setupAuthRouter(auth)

	session := &service.Session{
		Token:     "signed.jwt.token",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		User:      domain.Profile{Name: "Dinesh", Email: "dinesh@example.com"},
	}
	auth.On("Login", mock.Anything, mock.AnythingOfType("service.LoginInput")).Return(session, nil)

	body, _ := json.Marshal(map[string]string{
		"email":    "dinesh@example.com",
		"password": "pipes-and-fittings",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Data)
	payload := resp.Data.(map[string]any)
	assert.Equal(t, "signed.jwt.token", payload["token"])
}

func TestLogin_BadCredentials_Returns401(t *testing.T) {
	auth := new(mockAuthenticator)
	router := setupAuthRouter(auth)

	auth.On("Login", mock.Anything, mock.AnythingOfType("service.LoginInput")).
		Return(nil, apperrors.Unauthorized("invalid email or password"))

	body, _ := json.Marshal(map[string]string{
		"email":    "dinesh@example.com",
		"password": "wrong-password",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

// ============================================================================
// GET /api/v1/auth/me
// ============================================================================

func TestMe_Success(t *testing.T) {
	auth := new(mockAuthenticator)
	router := setupAuthRouter(auth)

	profile := &domain.Profile{Name: "Dinesh", Email: "dinesh@example.com"}
	auth.On("CurrentUser", mock.Anything, "signed.jwt.token").Return(profile, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer signed.jwt.token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	payload := resp.Data.(map[string]any)
	assert.Equal(t, "dinesh@example.com", payload["email"])
	auth.AssertExpectations(t)
}

func TestMe_MissingToken_Returns401(t *testing.T) {
	auth := new(mockAuthenticator)
	router := setupAuthRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
	auth.AssertNotCalled(t, "CurrentUser")
}
