package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sportsfed/federation-api/internal/core/service"
)

// TokenValidator verifies a bearer token string. *service.TokenIssuer
// satisfies it.
type TokenValidator interface {
	Validate(tokenString string) (*service.SessionClaims, error)
}

// Auth validates the session token and injects its claims into context.
func Auth(tokens TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("account_id", claims.Subject)
			c.Set("email", claims.Email)
			c.Set("role", string(claims.Role))
			c.Set("club_id", claims.ClubID)

			return next(c)
		}
	}
}
