package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hipotecalia/crm-backend/internal/platform/apierr"
)

type fakeAuthService struct {
	token    string
	loginErr error
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.token, nil
}

func (f *fakeAuthService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	return ctx, nil
}

func (f *fakeAuthService) TokenTTL() time.Duration {
	return 2 * time.Hour
}

func newAuthRouter(svc *fakeAuthService) *gin.Engine {
	router := gin.New()
	handler := NewAuthHandler(svc)
	router.POST("/auth/login", handler.Login)
	return router
}

func TestLogin_AnswersTokenAndTTL(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{token: "signed.jwt.token"})

	body := `{"email":"marta@hipotecalia.test","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.AccessToken != "signed.jwt.token" {
		t.Fatalf("unexpected token %q", resp.AccessToken)
	}
	if resp.ExpiresIn != 7200 {
		t.Fatalf("expected expires_in 7200, got %d", resp.ExpiresIn)
	}
}

func TestLogin_BadCredentialsMapTo401(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{
		loginErr: apierr.Unauthorized("invalid_credentials", errors.New("invalid credentials")),
	})

	body := `{"email":"marta@hipotecalia.test","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to parse error body: %v", err)
	}
	if envelope.Error.Code != "invalid_credentials" {
		t.Fatalf("expected code invalid_credentials, got %q", envelope.Error.Code)
	}
}

func TestLogin_MalformedBodyIsRejected(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{token: "unused"})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
