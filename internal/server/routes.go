package server

import (
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, authH *handler.AuthHandler, userH *handler.UserHandler) {
	authH.RegisterRoutes(e)
	userH.RegisterRoutes(e)
}
