package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JSebastianB25/Web-Project/internal/domain"
	"github.com/JSebastianB25/Web-Project/internal/middleware"
	"github.com/JSebastianB25/Web-Project/internal/repository"
	"github.com/JSebastianB25/Web-Project/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuthService struct {
	user       *domain.User
	loginErr   error
	refreshErr error
}

func (s *fakeAuthService) Login(ctx context.Context, username, password string) (string, string, *domain.User, error) {
	if s.loginErr != nil {
		return "", "", nil, s.loginErr
	}
	return "access-token", "refresh-token", s.user, nil
}

func (s *fakeAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	if s.refreshErr != nil {
		return "", s.refreshErr
	}
	return "new-access-token", nil
}

func (s *fakeAuthService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	if s.user == nil || s.user.ID != userID {
		return nil, repository.ErrUserNotFound
	}
	return s.user, nil
}

func (s *fakeAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	return nil, service.ErrInvalidToken
}

func newAuthRouter(auth service.AuthService) *chi.Mux {
	router := chi.NewRouter()
	handler := NewAuthHandler(auth, zap.NewNop())
	handler.RegisterPublicRoutes(router)
	router.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := context.WithValue(r.Context(), middleware.UserIDKey, int64(1))
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		})
		handler.RegisterProtectedRoutes(r)
	})
	return router
}

func TestLogin_ReturnsTokenPairWithUser(t *testing.T) {
	auth := &fakeAuthService{
		user: &domain.User{ID: 1, Username: "vendedor", Email: "vendedor@example.com", IsActive: true},
	}
	router := newAuthRouter(auth)

	body := `{"username": "vendedor", "password": "secret-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "access-token", resp.AccessToken)
	assert.Equal(t, "refresh-token", resp.RefreshToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "vendedor", resp.User.Username)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{loginErr: service.ErrInvalidCredentials})

	body := `{"username": "vendedor", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid username or password")
}

func TestLogin_InactiveUser(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{loginErr: service.ErrUserInactive})

	body := `{"username": "vendedor", "password": "secret-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "inactive")
}

func TestLogin_MissingFieldsRejected(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{})

	body := `{"username": "vendedor"}`
	req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshToken_IssuesNewAccessToken(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{})

	body := `{"refresh": "some-refresh-token"}`
	req := httptest.NewRequest(http.MethodPost, "/api/token/refresh", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RefreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "new-access-token", resp.AccessToken)
}

func TestRefreshToken_InvalidToken(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{refreshErr: service.ErrInvalidToken})

	body := `{"refresh": "bogus"}`
	req := httptest.NewRequest(http.MethodPost, "/api/token/refresh", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid refresh token")
}

func TestCurrentUser_ReturnsAuthenticatedUser(t *testing.T) {
	auth := &fakeAuthService{
		user: &domain.User{ID: 1, Username: "vendedor", Email: "vendedor@example.com", IsActive: true},
	}
	router := newAuthRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "vendedor")
}
