package model

import "time"

type User struct {
	ID           int64       `gorm:"primaryKey;autoIncrement"`
	Username     string      `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string      `gorm:"column:password_hash;size:100;not null"`
	Nickname     string      `gorm:"size:50"`
	IsActive     bool        `gorm:"not null;default:true"`
	Authorities  []Authority `gorm:"many2many:user_authorities"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// 権限（ROLE_USER / ROLE_ADMIN など）
type Authority struct {
	Name string `gorm:"primaryKey;size:50"`
}

// Authoritiesを名前のスライスへ変換する
func (u *User) AuthorityNames() []string {
	names := make([]string, 0, len(u.Authorities))
	for _, a := range u.Authorities {
		names = append(names, a.Name)
	}
	return names
}
