package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っている権限のいずれかを要求する。

func AuthorityGuard(names ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//要求された権限を持たないユーザーは拒否
			if !identity.HasAnyAuthority(names...) {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}

			return next(c)
		}
	}
}
