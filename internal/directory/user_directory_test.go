package directory_test

import (
	"context"
	"errors"
	"testing"

	"app/internal/directory"
	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

// =====================
// Helper
// =====================

func newDirectory(users *MockUserRepository) (*directory.UserDirectory, directory.PasswordHasher) {
	// コストは最小（テスト速度優先）
	hasher := directory.NewBcryptPasswordHasher(4)
	return directory.NewUserDirectory(users, hasher), hasher
}

func activeUser(t *testing.T, hasher directory.PasswordHasher, username string, password string) *model.User {
	t.Helper()

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	return &model.User{
		ID:           1,
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
		Authorities:  []model.Authority{{Name: "ROLE_USER"}},
	}
}

func TestUserDirectory_VerifyCredentials_Success(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	dir, hasher := newDirectory(users)

	users.On("FindByUsername", mock.Anything, "a@x.com").
		Return(activeUser(t, hasher, "a@x.com", "12345"), nil)

	identity, err := dir.VerifyCredentials(ctx, "a@x.com", "12345")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", identity.Subject)
	assert.Equal(t, []string{"ROLE_USER"}, identity.Authorities)

	users.AssertExpectations(t)
}

func TestUserDirectory_VerifyCredentials_WrongPassword(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	dir, hasher := newDirectory(users)

	users.On("FindByUsername", mock.Anything, "a@x.com").
		Return(activeUser(t, hasher, "a@x.com", "12345"), nil)

	_, err := dir.VerifyCredentials(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, directory.ErrBadCredentials)
}

func TestUserDirectory_VerifyCredentials_UnknownUser(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	dir, _ := newDirectory(users)

	users.On("FindByUsername", mock.Anything, "nobody@x.com").
		Return(nil, repository.ErrUserNotFound)

	_, err := dir.VerifyCredentials(ctx, "nobody@x.com", "12345")
	assert.ErrorIs(t, err, directory.ErrBadCredentials)
}

func TestUserDirectory_VerifyCredentials_InactiveUser(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	dir, hasher := newDirectory(users)

	u := activeUser(t, hasher, "a@x.com", "12345")
	u.IsActive = false

	users.On("FindByUsername", mock.Anything, "a@x.com").Return(u, nil)

	//パスワードが正しくても停止ユーザーは拒否
	_, err := dir.VerifyCredentials(ctx, "a@x.com", "12345")
	assert.ErrorIs(t, err, directory.ErrBadCredentials)
}

func TestUserDirectory_VerifyCredentials_RepositoryError(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	dir, _ := newDirectory(users)

	users.On("FindByUsername", mock.Anything, "a@x.com").
		Return(nil, errors.New("db down"))

	_, err := dir.VerifyCredentials(ctx, "a@x.com", "12345")
	assert.ErrorIs(t, err, directory.ErrBadCredentials)
}
