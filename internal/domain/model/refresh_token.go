package model

import "time"

// リフレッシュトークン1件。署名済みトークン文字列そのものが主キー。
type RefreshToken struct {
	Token      string    `json:"token" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"not null;index"`
	ExpiresAt  time.Time `json:"expiresAt" gorm:"not null"`
	Revoked    bool      `json:"revoked" gorm:"not null;default:false"`
	DeviceInfo string    `json:"deviceInfo" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
}

// 失効済みか期限切れならtrue
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.Revoked || t.ExpiresAt.Before(now)
}
