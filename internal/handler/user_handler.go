package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

// /api/user のHTTP
type UserHandler struct {
	users repository.UserRepository
}

// DI
func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

type userResponse struct {
	Username    string   `json:"username"`
	Nickname    string   `json:"nickname"`
	Authorities []string `json:"authorities"`
}

// 保護ルートを登録。認証必須。
func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.Use(middleware.RequireAuth())

	g.GET("/user", h.me)
}

// GET /api/user のハンドラ。ログイン中のユーザー自身を返す。
func (h *UserHandler) me(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	user, err := h.users.FindByUsername(c.Request().Context(), identity.Subject)
	if err != nil || user == nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	return c.JSON(http.StatusOK, userResponse{
		Username:    user.Username,
		Nickname:    user.Nickname,
		Authorities: user.AuthorityNames(),
	})
}
