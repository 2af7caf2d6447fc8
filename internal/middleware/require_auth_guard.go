package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//Authenticateは匿名を通すので、保護エンドポイントはこちらで弾く。

func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := IdentityFrom(c); !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			return next(c)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
