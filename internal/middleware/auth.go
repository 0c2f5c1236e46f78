package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	jwthelp "github.com/swapmart/auth-service/internal/jwt"
	"github.com/swapmart/auth-service/pkg/tokens"
)

type SimpleAuth struct {
	JWTSecret []byte
}

func NewSimpleAuth(secret []byte) *SimpleAuth {
	return &SimpleAuth{JWTSecret: secret}
}

// RequireAuth validates the access token and stores the caller identity in
// the echo context under "user_id".
func (m *SimpleAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr := bearerOrCookie(c)
		if tokenStr == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(tokenStr, m.JWTSecret)
		if err != nil || claims == nil {
			c.SetCookie(jwthelp.DeleteCookie("accessToken", "/"))
			c.SetCookie(jwthelp.DeleteCookie("refreshToken", "/"))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set("user_id", claims.Subject)

		return next(c)
	}
}

func bearerOrCookie(c echo.Context) string {
	const prefix = "Bearer "
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	if cookie, err := c.Cookie("accessToken"); err == nil {
		return cookie.Value
	}
	return ""
}
