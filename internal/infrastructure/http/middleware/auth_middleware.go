package middleware

import (
	stdErrors "errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-archive/errors"
	"github.com/johnquangdev/meeting-archive/pkg/jwt"
)

// Echo context keys set by EchoAuth
const (
	ContextKeySubject = "subject"
	ContextKeyRole    = "role"
	ContextKeyClaims  = "claims"
)

// EchoAuth returns an Echo middleware that validates the bearer JWT and, when
// roles are given, requires the token's role to be one of them. It sets
// "subject", "role" and "claims" into the Echo context.
func EchoAuth(jwtManager *jwt.Manager, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return httpError(errors.ErrUnauthenticated())
			}

			claims, err := jwtManager.ValidateAccessToken(token)
			if err != nil {
				if stdErrors.Is(err, jwt.ErrExpired) {
					return httpError(errors.ErrTokenExpired())
				}
				return httpError(errors.ErrInvalidToken())
			}

			if len(roles) > 0 && !hasRole(claims.Role, roles) {
				return httpError(errors.ErrPermissionDenied(c.Request().Method + " " + c.Path()).
					WithDetail("role", claims.Role))
			}

			c.Set(ContextKeySubject, claims.Subject)
			c.Set(ContextKeyRole, claims.Role)
			c.Set(ContextKeyClaims, claims)

			return next(c)
		}
	}
}

// httpError keeps the AppError as the internal cause so a custom error handler can
// render it with its application code
func httpError(appErr errors.AppError) *echo.HTTPError {
	return echo.NewHTTPError(appErr.HTTPCode, appErr.Message).SetInternal(appErr)
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if strings.EqualFold(role, r) {
			return true
		}
	}
	return false
}

// extractToken reads the Authorization header, falling back to the access_token cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
