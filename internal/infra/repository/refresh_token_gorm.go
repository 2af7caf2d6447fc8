package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type refreshTokenGormRepository struct {
	db *gorm.DB //DB接続（GORM）
}

// GORM実装
func NewRefreshTokenRepository(db *gorm.DB) repo.RefreshTokenRepository {
	return &refreshTokenGormRepository{db: db}
}

// リフレッシュトークンを保存する。
func (r *refreshTokenGormRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	//タイムアウトやキャンセルをDB処理に伝える
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return err
	}
	return nil
}

// トークン値（主キー）で1件検索する。
func (r *refreshTokenGormRepository) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	var rt model.RefreshToken

	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&rt).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrRefreshTokenNotFound
		}
		return nil, err
	}

	return &rt, nil
}

// revokedをfalse→trueに反転する。条件付き更新なので同じトークンで勝てるのは1回だけ。
func (r *refreshTokenGormRepository) MarkRevoked(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("token = ? AND revoked = ?", token, false).
		Update("revoked", true)

	if result.Error != nil {
		return result.Error
	}

	// 更新件数が0なら「すでに失効済みか存在しない」
	if result.RowsAffected == 0 {
		return repo.ErrRefreshTokenRevoked
	}

	return nil
}
