package repository

import (
	"context"
	"time"
)

// 失効済みアクセストークンのブラックリスト。
type BlacklistRepository interface {
	// トークンを登録する。同じトークンの二重登録はエラーにしない。
	Add(ctx context.Context, token string, expiredAt time.Time) error
	// expired_at > now の行だけを有効な登録とみなす
	IsBlacklisted(ctx context.Context, token string, now time.Time) (bool, error)
	// expired_at < now の行を削除し、削除件数を返す
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
