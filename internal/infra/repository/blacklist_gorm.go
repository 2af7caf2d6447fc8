package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type blacklistGormRepository struct {
	db *gorm.DB //DB接続（GORM）
}

// GORM実装
func NewBlacklistRepository(db *gorm.DB) repo.BlacklistRepository {
	return &blacklistGormRepository{db: db}
}

// トークンをブラックリストに登録する。
// 同じトークンの二重登録は何もしない（ログアウトは冪等）。
func (r *blacklistGormRepository) Add(ctx context.Context, token string, expiredAt time.Time) error {
	entry := model.BlacklistedToken{
		Token:     token,
		ExpiredAt: expiredAt,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error; err != nil {
		return err
	}
	return nil
}

// expired_atが未来の行だけを有効な登録とみなす。
// 期限切れの行は署名検証側で弾けるので、ここで数えなくても正しさは変わらない。
func (r *blacklistGormRepository) IsBlacklisted(ctx context.Context, token string, now time.Time) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.BlacklistedToken{}).
		Where("token = ? AND expired_at > ?", token, now).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// 期限切れの行を削除して件数を返す。
func (r *blacklistGormRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expired_at < ?", now).
		Delete(&model.BlacklistedToken{})

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
