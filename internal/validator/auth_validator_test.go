package validator_test

import (
	"context"
	"strings"
	"testing"

	"app/internal/usecase"
	"app/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestValidateLogin(t *testing.T) {
	v := validator.NewAuthValidator()
	ctx := context.Background()

	assert.NoError(t, v.ValidateLogin(ctx, "a@x.com", "12345"))

	// 必須
	assert.ErrorIs(t, v.ValidateLogin(ctx, "", "12345"), usecase.ErrValidation)
	assert.ErrorIs(t, v.ValidateLogin(ctx, "a@x.com", ""), usecase.ErrValidation)
	assert.ErrorIs(t, v.ValidateLogin(ctx, "   ", "12345"), usecase.ErrValidation)

	// 50文字を超えるユーザー名
	long := strings.Repeat("a", 51)
	assert.ErrorIs(t, v.ValidateLogin(ctx, long, "12345"), usecase.ErrValidation)

	// ちょうど50文字はOK
	assert.NoError(t, v.ValidateLogin(ctx, strings.Repeat("a", 50), "12345"))
}

func TestValidateRefresh(t *testing.T) {
	v := validator.NewAuthValidator()
	ctx := context.Background()

	assert.NoError(t, v.ValidateRefresh(ctx, "some-token"))
	assert.ErrorIs(t, v.ValidateRefresh(ctx, ""), usecase.ErrValidation)
	assert.ErrorIs(t, v.ValidateRefresh(ctx, "   "), usecase.ErrValidation)
}

func TestValidateLogout(t *testing.T) {
	v := validator.NewAuthValidator()
	ctx := context.Background()

	assert.NoError(t, v.ValidateLogout(ctx, "some-token"))
	assert.ErrorIs(t, v.ValidateLogout(ctx, ""), usecase.ErrValidation)
	assert.ErrorIs(t, v.ValidateLogout(ctx, "   "), usecase.ErrValidation)
}
