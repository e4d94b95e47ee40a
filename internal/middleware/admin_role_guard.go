package middleware

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

//contextのAuthContextがADMINかどうかを確認します。

func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth, ok := c.Get(CtxAuthKey).(usecase.AuthContext)
			if !ok || !auth.Authenticated {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//USERは拒否、ADMINだけ許可
			if !auth.IsAdmin() {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
