package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hipotecalia/crm-backend/internal/platform/apierr"
	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/requestdata"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthService struct {
	userID uuid.UUID
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return "", nil
}

func (f *fakeAuthService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString != "valid-token" {
		return ctx, apierr.Unauthorized("invalid_token", errors.New("invalid or expired token"))
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      f.userID,
	}), nil
}

func (f *fakeAuthService) TokenTTL() time.Duration {
	return time.Hour
}

func newProtectedRouter(t *testing.T, svc *fakeAuthService) (*gin.Engine, *uuid.UUID) {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	var seenUserID uuid.UUID
	router := gin.New()
	router.Use(NewAuthMiddleware(log, svc).RequireAuth())
	router.GET("/protected", func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		seenUserID = rd.UserID
		c.Status(http.StatusOK)
	})
	return router, &seenUserID
}

func TestRequireAuth_MissingTokenIs401(t *testing.T) {
	router, _ := newProtectedRouter(t, &fakeAuthService{userID: uuid.New()})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_BadTokenIs401(t *testing.T) {
	router, _ := newProtectedRouter(t, &fakeAuthService{userID: uuid.New()})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_ValidTokenReachesHandlerWithIdentity(t *testing.T) {
	userID := uuid.New()
	router, seen := newProtectedRouter(t, &fakeAuthService{userID: userID})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if *seen != userID {
		t.Fatalf("expected user id %s in request context, got %s", userID, *seen)
	}
}

func TestRequireAuth_QueryTokenIsAccepted(t *testing.T) {
	router, _ := newProtectedRouter(t, &fakeAuthService{userID: uuid.New()})

	req := httptest.NewRequest(http.MethodGet, "/protected?token=valid-token", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAuth_NilIdentityIs403(t *testing.T) {
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	router := gin.New()
	router.Use(NewAuthMiddleware(log, &fakeAuthService{userID: uuid.Nil}).RequireAuth())
	router.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
