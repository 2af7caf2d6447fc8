package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB //DB接続（GORM）
}

// GORM実装
func NewUserRepository(db *gorm.DB) repo.UserRepository {
	return &userGormRepository{db: db}
}

// usernameで1件取得する。Authoritiesも一緒に読み込む。
func (r *userGormRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).
		Preload("Authorities").
		Where("username = ?", username).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}
