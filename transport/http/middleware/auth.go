package middleware

import (
	"context"
	"errors"
	"net/http"
	"studio/config"
	"studio/infras/jwt"
	"studio/infras/otel"
	"studio/permissions"
	"studio/shared/constant"
	"studio/shared/failure"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

const skipAuth SkipAuthKey = "skip"

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// Auth validates the bearer token and puts the caller's id, role and token id
// on the request context.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, err := m.authenticate(request)
		if err != nil {
			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the caller's role against the route's permission entry.
// It must run after Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if err := m.authorize(request); err != nil {
			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey lets internal callers with the shared key bypass Auth and RBAC.
// A wrong key is rejected rather than silently downgraded to a user call.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, skipAuth, false)))

			return
		}

		scope.SetAttribute("http.source", "internal")

		if apiKey != m.cfg.App.APIKey {
			scope.TraceError(failure.ForbiddenError)
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, skipAuth, true)))
	})
}

func (m *authRoleImpl) authenticate(request *http.Request) (ctx context.Context, err error) {
	ctx = request.Context()

	_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if skipped(ctx) {
		return ctx, nil
	}

	path := routePattern(request)
	scope.SetAttributes(map[string]any{
		"middleware.type": "auth",
		"http.path":       path,
		"http.method":     request.Method,
	})

	if m.permission != nil && m.permission.FindPermissions(path, request.Method).Skip {
		return ctx, nil
	}

	authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
	if authHeader == "" {
		return ctx, failure.Unauthorized("Missing authorization header")
	}

	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return ctx, failure.Unauthorized("Invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
	if err != nil {
		return ctx, failure.Unauthorized(tokenErrorMessage(err))
	}

	if claims.UserID == "" || claims.Role == "" {
		log.Error().Str("token_id", claims.TokenID).Msg("JWT claims: user or role is empty")

		return ctx, failure.Unauthorized("Invalid token claims")
	}

	ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

	return ctx, nil
}

func (m *authRoleImpl) authorize(request *http.Request) (err error) {
	ctx := request.Context()

	_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if skipped(ctx) {
		return nil
	}

	if m.permission == nil {
		return failure.ForbiddenError
	}

	if m.permission.Skip {
		return nil
	}

	permission := m.permission.FindPermissions(routePattern(request), request.Method)
	if permission.Skip {
		return nil
	}

	userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if !permission.Allows(userRole) {
		scope.SetAttributes(map[string]any{
			"user_role":     userRole,
			"allowed_roles": permission.Permissions,
			"reason":        "role_not_allowed",
		})

		return failure.ForbiddenError
	}

	return nil
}

// routePattern resolves the chi pattern ("/v1/bookings/{id}") the request
// will hit. Middlewares run before routing, so the pattern is looked up
// rather than read from the route context.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}

func skipped(ctx context.Context) bool {
	skip, _ := ctx.Value(skipAuth).(bool)

	return skip
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, jwt.ErrInvalidToken):
		return "Invalid token"
	case errors.Is(err, jwt.ErrInvalidClaim):
		return "Invalid token claims"
	default:
		return "Token validation failed"
	}
}
