package directory

import (
	"context"
	"errors"

	"app/internal/domain/model"
	"app/internal/repository"
)

// ユーザーが存在しない・パスワード不一致・停止中はすべてこれに潰す
var ErrBadCredentials = errors.New("bad credentials")

// UserDirectoryは資格情報を照合してIdentityを返す。
// トークン発行時にだけ呼ばれる（リクエストごとの検証では使わない）。
type UserDirectory struct {
	users  repository.UserRepository
	hasher PasswordHasher
}

func NewUserDirectory(users repository.UserRepository, hasher PasswordHasher) *UserDirectory {
	return &UserDirectory{
		users:  users,
		hasher: hasher,
	}
}

// 資格情報を照合する。失敗理由は呼び出し側に区別させない。
func (d *UserDirectory) VerifyCredentials(ctx context.Context, username string, password string) (model.Identity, error) {
	user, err := d.users.FindByUsername(ctx, username)
	if err != nil || user == nil {
		return model.Identity{}, ErrBadCredentials
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return model.Identity{}, ErrBadCredentials
	}

	//パスワード照合（bcrypt）
	if !d.hasher.Verify(user.PasswordHash, password) {
		return model.Identity{}, ErrBadCredentials
	}

	return model.Identity{
		Subject:     user.Username,
		Authorities: user.AuthorityNames(),
	}, nil
}
