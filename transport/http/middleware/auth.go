package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"resto/config"
	"resto/infras/jwt"
	"resto/infras/otel"
	authService "resto/internal/domains/auth/service"
	"resto/permissions"
	"resto/shared/constant"
	"resto/shared/failure"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// internalCallKey marks requests authenticated by the service API key.
type internalCallKey struct{}

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
	auth       authService.Auth
	otel       otel.Otel
	permission *permissions.PermissionData
	apiKey     []byte
}

func NewAuthRoleMiddleware(auth authService.Auth, otel otel.Otel, perms *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		auth:       auth,
		otel:       otel,
		permission: perms,
		apiKey:     []byte(cfg.App.APIKey),
	}
}

func internalCall(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCallKey{}).(bool)

	return internal
}

func deny(w http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	response.WithError(w, err)
}

// Auth resolves the bearer token into an admin session. The token must be signed, unexpired
// and unrevoked, and its admin must still exist and be active.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		path := m.routePattern(r)

		if internalCall(ctx) || (m.permission != nil && m.permission.FindPermissions(path, r.Method).Skip) {
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     r.Method,
		})

		header := r.Header.Get(constant.RequestHeaderAuthorization)
		if header == "" {
			deny(w, scope, failure.Unauthorized("missing authorization header"))

			return
		}

		token, err := jwt.ExtractTokenFromHeader(header)
		if err != nil {
			deny(w, scope, failure.Unauthorized("invalid authorization header format"))

			return
		}

		session, err := m.auth.Authenticate(ctx, token)
		if err != nil {
			deny(w, scope, err)

			return
		}

		scope.SetAttribute("user_id", session.UserID)

		ctx = r.Context()
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, session.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, session.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, session.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, session.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RBAC admits the authenticated role when the route's permission entry lists it. It must run
// after Auth. Without a permission table every request is forbidden.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if internalCall(ctx) {
			next.ServeHTTP(w, r)

			return
		}

		if m.permission == nil {
			deny(w, scope, failure.ForbiddenError)

			return
		}

		permission := m.permission.FindPermissions(m.routePattern(r), r.Method)
		if m.permission.Skip || permission.Skip {
			next.ServeHTTP(w, r)

			return
		}

		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !permission.Allows(role) {
			scope.SetAttributes(map[string]any{
				"user_role":     role,
				"allowed_roles": permission.Permissions,
			})
			deny(w, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(w, r)
	})
}

// APIKey authenticates internal callers presenting the configured X-API-Key. Requests without
// the header continue to Auth; a wrong key, or any key when none is configured, is forbidden.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		key := r.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if len(m.apiKey) == 0 || subtle.ConstantTimeCompare([]byte(key), m.apiKey) != 1 {
			deny(w, scope, failure.ForbiddenError)

			return
		}

		ctx = r.Context()
		ctx = context.WithValue(ctx, internalCallKey{}, true)
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.ContextInternal)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleSuperAdmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// routePattern returns the chi pattern matching r without its trailing slash, such as
// /v1/admin/bookings/{id}, so permissions can be declared per route rather than per URL.
func (m *authRoleImpl) routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return permissions.Normalize(r.URL.Path)
	}

	if pattern := rctx.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path); pattern != "" {
		return permissions.Normalize(pattern)
	}

	return permissions.Normalize(r.URL.Path)
}
