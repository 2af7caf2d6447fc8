package validator

import (
	"context"
	"strings"

	"app/internal/usecase"
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	username = strings.TrimSpace(username)

	// 必須チェック
	if username == "" || password == "" {
		return usecase.ErrValidation
	}

	if len(username) > 50 {
		return usecase.ErrValidation
	}

	return nil
}

// refresh 入力を検証
func (v *authValidator) ValidateRefresh(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return usecase.ErrValidation
	}

	return nil
}

// logout 入力を検証
func (v *authValidator) ValidateLogout(ctx context.Context, accessToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return usecase.ErrValidation
	}

	return nil
}
