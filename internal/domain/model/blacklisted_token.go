package model

import "time"

// 明示的にログアウトされたアクセストークン。
// ExpiredAtは元トークンの有効期限で、これを過ぎた行はスケジューラが削除する。
type BlacklistedToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	ExpiredAt time.Time `json:"expiredAt" gorm:"column:expired_at;not null;index"`
	CreatedAt time.Time `json:"createdAt"`
}
