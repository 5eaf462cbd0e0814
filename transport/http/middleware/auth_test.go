package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"studio/config"
	"studio/infras/jwt"
	otelMocks "studio/infras/otel/mocks"
	"studio/permissions"
	"studio/shared/constant"
	"studio/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testAPIKey = "internal-key"
)

func token(t *testing.T, userID, role string) string {
	t.Helper()

	claims := jwt.Claims{
		UserID:  userID,
		Role:    role,
		TokenID: "token-1",
		Type:    jwt.AccessToken,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return "Bearer " + signed
}

func newRouter(t *testing.T, ot *otelMocks.Otel) chi.Router {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.AccessSecret = testSecret
	cfg.App.APIKey = testAPIKey

	perms := permissions.Get()
	require.NotNil(t, perms)

	m := middleware.NewAuthRoleMiddleware(jwt.New(cfg), ot, perms, cfg)

	echo := func(writer http.ResponseWriter, request *http.Request) {
		user, _ := request.Context().Value(constant.ContextKeyUserID).(string)
		writer.Header().Set("X-User", user)
		writer.WriteHeader(http.StatusNoContent)
	}

	router := chi.NewRouter()
	router.Route("/v1", func(group chi.Router) {
		group.Use(m.APIKey)
		group.Use(m.Auth)
		group.Use(m.RBAC)

		group.Route("/settlements", func(settlements chi.Router) {
			settlements.Patch("/{id}/review", echo)
		})
		group.Route("/bookings", func(bookings chi.Router) {
			bookings.Get("/{id}", echo)
		})
	})

	return router
}

func TestAuthRole(t *testing.T) {
	router := newRouter(t, otelMocks.NewOtel())

	tests := []struct {
		name     string
		method   string
		path     string
		header   map[string]string
		wantCode int
		wantUser string
	}{
		{
			name:     "missing header",
			method:   http.MethodGet,
			path:     "/v1/bookings/b1",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			method:   http.MethodGet,
			path:     "/v1/bookings/b1",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "invalid token",
			method:   http.MethodGet,
			path:     "/v1/bookings/b1",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "token without role",
			method:   http.MethodGet,
			path:     "/v1/bookings/b1",
			header:   map[string]string{constant.RequestHeaderAuthorization: token(t, "u1", "")},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "any authenticated role",
			method:   http.MethodGet,
			path:     "/v1/bookings/b1",
			header:   map[string]string{constant.RequestHeaderAuthorization: token(t, "u1", constant.RoleClient)},
			wantCode: http.StatusNoContent,
			wantUser: "u1",
		},
		{
			name:     "role not allowed",
			method:   http.MethodPatch,
			path:     "/v1/settlements/s1/review",
			header:   map[string]string{constant.RequestHeaderAuthorization: token(t, "u2", constant.RoleArtist)},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "role allowed",
			method:   http.MethodPatch,
			path:     "/v1/settlements/s1/review",
			header:   map[string]string{constant.RequestHeaderAuthorization: token(t, "u3", constant.RoleAdmin)},
			wantCode: http.StatusNoContent,
			wantUser: "u3",
		},
		{
			name:     "internal api key skips auth",
			method:   http.MethodPatch,
			path:     "/v1/settlements/s1/review",
			header:   map[string]string{constant.RequestHeaderAPIKey: testAPIKey},
			wantCode: http.StatusNoContent,
		},
		{
			name:     "wrong api key",
			method:   http.MethodPatch,
			path:     "/v1/settlements/s1/review",
			header:   map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.header {
				request.Header.Set(key, value)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantUser, recorder.Header().Get("X-User"))
		})
	}
}

func TestAuthRole_TracesRejections(t *testing.T) {
	ot := otelMocks.NewOtel()
	router := newRouter(t, ot)

	request := httptest.NewRequest(http.MethodGet, "/v1/bookings/b1", nil)
	request.Header.Set(constant.RequestHeaderAuthorization, "Bearer abc")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, []string{"api_key.middleware", "auth.middleware"}, ot.Spans())

	errs := ot.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "Invalid token", errs[0].Error())
}
