package directory

import "golang.org/x/crypto/bcrypt"

// パスワードのハッシュ化と照合の約束
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Verify(hashed string, raw string) bool
}

type bcryptPasswordHasher struct {
	cost int
}

// bcrypt実装
func NewBcryptPasswordHasher(cost int) PasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptPasswordHasher{cost: cost}
}

func (h *bcryptPasswordHasher) Hash(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *bcryptPasswordHasher) Verify(hashed string, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}
