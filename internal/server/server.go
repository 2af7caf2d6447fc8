package server

import (
	"app/internal/handler"
	"app/internal/middleware"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// NewはEchoを組み立てて返す。起動はmain側。
func New(
	verifier middleware.TokenVerifier,
	blacklist repository.BlacklistRepository,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())

	//全リクエスト共通：bearerトークンがあれば検証して識別する（無ければ匿名で通す）
	e.Use(middleware.Authenticate(verifier, blacklist))

	RegisterRoutes(e, authH, userH)

	return e
}
