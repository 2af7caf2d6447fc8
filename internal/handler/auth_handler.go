package handler

import (
	"context"
	"net/http"
	"strings"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// handlerがusecaseに依存する約束
type sessionUsecase interface {
	Login(ctx context.Context, req usecase.AuthLoginRequest, deviceInfo string) (*usecase.TokenPair, error)
	Refresh(ctx context.Context, refreshTokenValue string, deviceInfo string) (*usecase.TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
}

// /api/login /api/refresh-token /api/logout のHTTP
type AuthHandler struct {
	uc sessionUsecase
}

// DI
func NewAuthHandler(uc sessionUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// /api/login のリクエストボディ。
type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	DeviceInfo string `json:"deviceInfo"`
}

// /api/refresh-token のリクエストボディ。
type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
	DeviceInfo   string `json:"deviceInfo"`
}

// 認証ルートを登録
func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")

	g.POST("/login", h.login)
	g.POST("/refresh-token", h.refreshToken)
	g.POST("/logout", h.logout)
}

// POST /api/login のハンドラ。
// 成功時はアクセストークンをAuthorizationレスポンスヘッダにも入れる。
func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//deviceInfoが無ければUser-Agentで代用する
	deviceInfo := req.DeviceInfo
	if deviceInfo == "" {
		deviceInfo = c.Request().Header.Get("User-Agent")
	}

	pair, err := h.uc.Login(c.Request().Context(), usecase.AuthLoginRequest{
		Username: req.Username,
		Password: req.Password,
	}, deviceInfo)
	if err != nil {
		switch err {
		case usecase.ErrValidation:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
		case usecase.ErrInvalidCredentials:
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "bad credentials"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+pair.AccessToken)

	return c.JSON(http.StatusOK, pair)
}

// POST /api/refresh-token のハンドラ。
// 無効・期限切れ・再利用・競合負けは同じ「再ログインして」の400にまとめる。
func (h *AuthHandler) refreshToken(c echo.Context) error {
	var req refreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	pair, err := h.uc.Refresh(c.Request().Context(), req.RefreshToken, req.DeviceInfo)
	if err != nil {
		switch err {
		case usecase.ErrValidation:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
		case usecase.ErrRefreshTokenNotFound, usecase.ErrRefreshTokenExpired:
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "Invalid or expired refresh token. Please login again.",
			})
		case usecase.ErrDeviceMismatch:
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "Refresh token does not match this device. Please login again.",
			})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	return c.JSON(http.StatusOK, pair)
}

// POST /api/logout のハンドラ。
// 対象はAuthorizationヘッダのアクセストークン。二重ログアウトも200。
func (h *AuthHandler) logout(c echo.Context) error {
	authz := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(authz, "Bearer ") {
		return c.String(http.StatusBadRequest, "Invalid token.")
	}

	accessToken := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

	if err := h.uc.Logout(c.Request().Context(), accessToken); err != nil {
		switch err {
		case usecase.ErrValidation, usecase.ErrInvalidToken:
			return c.String(http.StatusBadRequest, "Invalid token.")
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	return c.String(http.StatusOK, "Successfully logged out.")
}
