package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swapmart/auth-service/internal/middleware"
)

type Deps struct {
	AuthHandler *AuthHTTP
	JWTSecret   []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMw := middleware.NewSimpleAuth(d.JWTSecret)

	auth := e.Group("/auth")
	auth.POST("/sign-up", d.AuthHandler.Register)
	auth.GET("/verify", d.AuthHandler.VerifyEmail)
	auth.POST("/verify", d.AuthHandler.VerifyEmail)
	auth.POST("/sign-in", d.AuthHandler.SignIn)
	auth.POST("/refresh-token", d.AuthHandler.Refresh)

	private := auth.Group("")
	private.Use(authMw.RequireAuth)
	private.GET("/verify-token", d.AuthHandler.ResendVerification)
	private.POST("/sign-out", d.AuthHandler.SignOut)
	private.GET("/profile", d.AuthHandler.Profile)
}
