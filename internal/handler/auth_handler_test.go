package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmendes/academia-api/internal/models"
	appErrors "github.com/rmendes/academia-api/pkg/errors"
)

type stubAuthService struct {
	token *models.TokenResponse
	err   error
	got   models.LoginRequest
}

func (s *stubAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.token, nil
}

func newAuthRouter(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc)
	router := gin.New()
	router.POST("/token", h.Token)
	router.POST("/login/", h.Login)
	return router
}

func TestTokenEndpointSuccess(t *testing.T) {
	svc := &stubAuthService{token: &models.TokenResponse{AccessToken: "jwt-value", TokenType: "bearer", ExpiresIn: 1800}}
	router := newAuthRouter(svc)

	form := url.Values{"username": {"admin"}, "password": {"1234"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.LoginRequest{Username: "admin", Password: "1234"}, svc.got)
	assert.Contains(t, w.Body.String(), `"access_token":"jwt-value"`)
	assert.Contains(t, w.Body.String(), `"token_type":"bearer"`)
}

func TestLoginEndpointSuccess(t *testing.T) {
	svc := &stubAuthService{token: &models.TokenResponse{AccessToken: "jwt-value", TokenType: "bearer", ExpiresIn: 1800}}
	router := newAuthRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(`{"username":"admin","password":"1234"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", svc.got.Username)
}

func TestLoginEndpointInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{err: appErrors.ErrInvalidCredentials}
	router := newAuthRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(`{"username":"admin","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid username or password")
}

func TestLoginEndpointMalformedBody(t *testing.T) {
	svc := &stubAuthService{}
	router := newAuthRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
