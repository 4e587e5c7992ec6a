package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotlink/config"
	"slotlink/infras/jwt"
	otelMocks "slotlink/infras/otel/mocks"
	"slotlink/permissions"
	"slotlink/shared/constant"
	"slotlink/transport/http/middleware"
)

type seen struct {
	user string
	role string
}

func newAuthRouter(t *testing.T, got *seen) (http.Handler, jwt.JWT) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	tokens := jwt.New(cfg)
	perms := permissions.Get()
	require.NotNil(t, perms)

	authRole := middleware.NewAuthRoleMiddleware(tokens, otelMocks.NewOtel(), perms, cfg)

	record := func(writer http.ResponseWriter, request *http.Request) {
		got.user, _ = request.Context().Value(constant.ContextKeyUserID).(string)
		got.role, _ = request.Context().Value(constant.ContextKeyUserRole).(string)

		writer.WriteHeader(http.StatusNoContent)
	}

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)

		r.Route("/v1", func(v1 chi.Router) {
			v1.Route("/links", func(links chi.Router) {
				links.Get("/", record)
			})
			v1.Route("/calendars", func(calendars chi.Router) {
				calendars.Post("/{id}/busy", record)
			})
			v1.Get("/public/links/{slug}", record)
		})
	})

	return router, tokens
}

func TestAuthRole(t *testing.T) {
	probe := &seen{}
	router, tokens := newAuthRouter(t, probe)

	owner, err := tokens.GenerateTokenPair("owner-1", "owner@example.com", constant.RoleOwner)
	require.NoError(t, err)

	visitor, err := tokens.GenerateTokenPair("visitor-1", "visitor@example.com", "visitor")
	require.NoError(t, err)

	tests := []struct {
		name     string
		method   string
		path     string
		headers  map[string]string
		wantCode int
		wantUser string
		wantRole string
	}{
		{
			name:     "public page skips auth",
			method:   http.MethodGet,
			path:     "/v1/public/links/intro-call",
			wantCode: http.StatusNoContent,
		},
		{
			name:     "owner route without token",
			method:   http.MethodGet,
			path:     "/v1/links",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed authorization header",
			method:   http.MethodGet,
			path:     "/v1/links",
			headers:  map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "refresh token is not an access token",
			method:   http.MethodGet,
			path:     "/v1/links",
			headers:  map[string]string{constant.RequestHeaderAuthorization: "Bearer " + owner.RefreshToken},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "owner token",
			method:   http.MethodGet,
			path:     "/v1/links",
			headers:  map[string]string{constant.RequestHeaderAuthorization: "Bearer " + owner.AccessToken},
			wantCode: http.StatusNoContent,
			wantUser: "owner-1",
			wantRole: constant.RoleOwner,
		},
		{
			name:     "role not allowed",
			method:   http.MethodGet,
			path:     "/v1/links",
			headers:  map[string]string{constant.RequestHeaderAuthorization: "Bearer " + visitor.AccessToken},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "internal key pushes busy intervals",
			method:   http.MethodPost,
			path:     "/v1/calendars/cal-1/busy",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusNoContent,
			wantRole: constant.RoleInternal,
		},
		{
			name:     "wrong internal key",
			method:   http.MethodPost,
			path:     "/v1/calendars/cal-1/busy",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			*probe = seen{}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantUser, probe.user)
			assert.Equal(t, tt.wantRole, probe.role)
		})
	}
}
