package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lifeguard/config"
	"lifeguard/infras/jwt"
	jwtMocks "lifeguard/infras/jwt/mocks"
	otelMocks "lifeguard/infras/otel/mocks"
	"lifeguard/permissions"
	"lifeguard/shared/constant"
	"lifeguard/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const testPermissions = `{
  "endpoints": [
    {"path": "/v1/quotes", "method": "POST", "skip": true},
    {"path": "/v1/bookings/", "method": "GET", "permissions": ["superadmin", "admin"]},
    {"path": "/v1/auth/register", "method": "POST", "permissions": ["superadmin"]}
  ]
}`

func newRouter(t *testing.T, jwtService jwt.JWT) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	authRole := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), permissions.Parse([]byte(testPermissions)), cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		w.Header().Set("X-User", user)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		r.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)

		r.Post("/quotes", ok)
		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", ok)
		})
		r.Post("/auth/register", ok)
		r.Get("/internal/debug", ok)
	})

	return router
}

func TestAuthRole(t *testing.T) {
	adminClaims := &jwt.Claims{UserID: "admin-1", Email: "ops@example.com", Role: constant.RoleAdmin}

	tests := []struct {
		name      string
		method    string
		path      string
		header    map[string]string
		setupMock func(m *jwtMocks.MockJWT)
		wantCode  int
		wantUser  string
	}{
		{
			name:     "public route needs no token",
			method:   http.MethodPost,
			path:     "/v1/quotes",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing token",
			method:   http.MethodGet,
			path:     "/v1/bookings",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			method:   http.MethodGet,
			path:     "/v1/bookings",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			method: http.MethodGet,
			path:   "/v1/bookings",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer expired"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("expired", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "admin can list bookings",
			method: http.MethodGet,
			path:   "/v1/bookings",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("good", jwt.AccessToken).Return(adminClaims, nil)
			},
			wantCode: http.StatusOK,
			wantUser: "admin-1",
		},
		{
			name:   "admin cannot register admins",
			method: http.MethodPost,
			path:   "/v1/auth/register",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("good", jwt.AccessToken).Return(adminClaims, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "unlisted route is denied",
			method: http.MethodGet,
			path:   "/v1/internal/debug",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("good", jwt.AccessToken).Return(adminClaims, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "valid api key skips token checks",
			method:   http.MethodPost,
			path:     "/v1/auth/register",
			header:   map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong api key",
			method:   http.MethodGet,
			path:     "/v1/bookings",
			header:   map[string]string{constant.RequestHeaderAPIKey: "nope"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(jwtService)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			newRouter(t, jwtService).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantUser, rec.Header().Get("X-User"))
		})
	}
}
