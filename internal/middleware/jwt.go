package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/octobees/employee-search/api/internal/auth"
)

// JWT validates client bearer tokens and stores the client identity in the request context.
func JWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, errorBody("missing authorization header"))
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorBody("invalid authorization header"))
			}

			claims, err := manager.ParseToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody("invalid token"))
			}

			c.Set(ContextKeyClientID, claims.Subject)
			c.Set(ContextKeyScope, claims.Scope)

			return next(c)
		}
	}
}

// RequireScope enforces that the authenticated client token carries scope.
func RequireScope(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			value, ok := c.Get(ContextKeyScope).(string)
			if !ok || value == "" {
				return c.JSON(http.StatusForbidden, errorBody("missing scope"))
			}
			for _, s := range strings.Fields(value) {
				if s == scope {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, errorBody("insufficient scope"))
		}
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
