package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// revoked=false → true の条件付き更新に負けた（既に消費済み）
var ErrRefreshTokenRevoked = errors.New("refresh token already revoked")

// リフレッシュトークンの保存・取得・失効。
// 行は削除しない（失効済みをそのまま残す）。
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	// トークン値（主キー）で1件検索する
	FindByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	// revokedをfalseからtrueへ1回だけ反転する。
	// 競合した場合、勝者以外はErrRefreshTokenRevokedを受け取る。
	MarkRevoked(ctx context.Context, token string) error
}
