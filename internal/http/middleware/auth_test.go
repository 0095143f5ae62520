package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/readnest-backend/internal/domain"
	"github.com/yungbote/readnest-backend/internal/platform/apierr"
	"github.com/yungbote/readnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/readnest-backend/internal/repos/testutil"
)

type fakeAuthService struct {
	userID uuid.UUID
}

func (f *fakeAuthService) Register(ctx context.Context, user *types.User) (*types.User, error) {
	return user, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	return "", nil, apierr.InvalidCredentials()
}

func (f *fakeAuthService) ParseToken(tokenString string) (*ctxutil.RequestData, error) {
	if tokenString != "good-token" {
		return nil, apierr.Unauthenticated("invalid token")
	}
	return &ctxutil.RequestData{
		UserID:      f.userID,
		Email:       "mw@example.com",
		Role:        string(types.RoleUser),
		TokenString: tokenString,
	}, nil
}

func (f *fakeAuthService) AccessTTL() time.Duration { return time.Hour }

// newTestRouter mounts a single protected route; captured points at the
// identity the handler saw, filled in once ServeHTTP returns.
func newTestRouter(t *testing.T, auth *fakeAuthService, captured **ctxutil.RequestData) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	am := NewAuthMiddleware(testutil.Logger(t), auth)
	r := gin.New()
	r.GET("/private", am.RequireAuth(), func(c *gin.Context) {
		if captured != nil {
			*captured = ctxutil.GetRequestData(c.Request.Context())
		}
		c.Status(http.StatusOK)
	})
	return r
}

func perform(r *gin.Engine, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingToken(t *testing.T) {
	r := newTestRouter(t, &fakeAuthService{userID: uuid.New()}, nil)
	w := perform(r, "/private", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r := newTestRouter(t, &fakeAuthService{userID: uuid.New()}, nil)
	w := perform(r, "/private", map[string]string{"Authorization": "Bearer bad-token"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthBearerHeader(t *testing.T) {
	auth := &fakeAuthService{userID: uuid.New()}
	var captured *ctxutil.RequestData
	r := newTestRouter(t, auth, &captured)

	w := perform(r, "/private", map[string]string{"Authorization": "Bearer good-token"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured == nil || captured.UserID != auth.userID {
		t.Fatalf("expected request data in context, got %+v", captured)
	}
	if captured.Email != "mw@example.com" || captured.Role != string(types.RoleUser) {
		t.Fatalf("unexpected identity %+v", captured)
	}
}

func TestRequireAuthQueryToken(t *testing.T) {
	r := newTestRouter(t, &fakeAuthService{userID: uuid.New()}, nil)
	w := perform(r, "/private?token=good-token", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireAuthRejectsNilIdentity(t *testing.T) {
	r := newTestRouter(t, &fakeAuthService{userID: uuid.Nil}, nil)
	w := perform(r, "/private?token=good-token", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
