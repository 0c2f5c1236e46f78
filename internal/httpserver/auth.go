package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	jwthelp "github.com/swapmart/auth-service/internal/jwt"
	"github.com/swapmart/auth-service/internal/service"
	"github.com/swapmart/auth-service/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

// httpError maps the service error taxonomy to status codes. Messages stay
// generic; the service already logged the detail.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, service.ErrEmailTaken.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, service.ErrUnauthorized.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusForbidden, service.ErrInvalidCredentials.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Register(ctx, req.Name, req.Email, req.Password); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Please check your inbox.",
	})
}

func (h *AuthHTTP) VerifyEmail(c echo.Context) error {
	ctx := c.Request().Context()

	// The mailed link arrives as a GET with query params; the mobile client
	// posts the same fields as JSON.
	req := struct {
		ID    string `query:"id"    json:"id"`
		Token string `query:"token" json:"token"`
	}{}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.VerifyEmail(ctx, req.ID, req.Token); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Your email is verified.",
	})
}

func (h *AuthHTTP) ResendVerification(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	if err := h.Svc.ResendVerification(ctx, userID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Please check your inbox.",
	})
}

func (h *AuthHTTP) SignIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_sign_in")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("sign_in_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	setTokenCookies(c, res)

	return c.JSON(http.StatusOK, echo.Map{
		"profile": res.Profile,
		"tokens": echo.Map{
			"access":  res.AccessToken,
			"refresh": res.RefreshToken,
		},
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.RefreshToken == "" {
		if cookie, err := c.Cookie("refreshToken"); err == nil {
			req.RefreshToken = cookie.Value
		}
	}

	res, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return httpError(err)
	}

	setTokenCookies(c, res)

	return c.JSON(http.StatusOK, echo.Map{
		"tokens": echo.Map{
			"access":  res.AccessToken,
			"refresh": res.RefreshToken,
		},
	})
}

func (h *AuthHTTP) SignOut(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	var refreshToken string
	if cookie, err := c.Cookie("refreshToken"); err == nil {
		refreshToken = cookie.Value
	}

	if err := h.Svc.SignOut(ctx, userID, refreshToken); err != nil {
		return httpError(err)
	}

	c.SetCookie(jwthelp.DeleteCookie("accessToken", "/"))
	c.SetCookie(jwthelp.DeleteCookie("refreshToken", "/"))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "signed out",
	})
}

func (h *AuthHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(string)

	profile, err := h.Svc.Profile(ctx, userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"profile": profile,
	})
}

func setTokenCookies(c echo.Context, res *service.LoginResult) {
	c.SetCookie(jwthelp.CreateCookie("accessToken", res.AccessToken, "/", res.AccessExp))
	c.SetCookie(jwthelp.CreateCookie("refreshToken", res.RefreshToken, "/", time.Now().Add(30*24*time.Hour)))
}
