package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

// ユーザーの取得（権限つき）
type UserRepository interface {
	// usernameで1件取得する。Authoritiesも読み込む。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}
