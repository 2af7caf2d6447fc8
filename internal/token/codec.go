package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"app/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// 権限をカンマ結合で入れるクレームキー
const authoritiesClaimKey = "auth"

var (
	//起動時エラー。リクエスト処理では返らない
	ErrInvalidSigningKey = errors.New("invalid signing key")

	ErrBadSignature = errors.New("bad token signature")
	ErrExpired      = errors.New("token expired")
	ErrMalformed    = errors.New("malformed token")
	ErrUnsupported  = errors.New("unsupported token")
)

// Codecはアクセス/リフレッシュトークンの発行と検証を行う。
// 鍵は起動時に1回読み込み、以後変更しない。
type Codec struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodecはbase64のシークレットを復号してCodecを作る。
// 復号できないシークレットは起動を止める（ErrInvalidSigningKey）。
func NewCodec(base64Secret string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	key, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigningKey, err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty secret", ErrInvalidSigningKey)
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, fmt.Errorf("%w: non-positive validity", ErrInvalidSigningKey)
	}

	return &Codec{
		key:        key,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// アクセストークンを発行する。
func (c *Codec) IssueAccessToken(identity model.Identity) (string, error) {
	return c.issue(identity, c.accessTTL)
}

// リフレッシュトークンを発行する（有効期限だけが違う）。
func (c *Codec) IssueRefreshToken(identity model.Identity) (string, error) {
	return c.issue(identity, c.refreshTTL)
}

// jwt発行（HS512）
func (c *Codec) issue(identity model.Identity, validity time.Duration) (string, error) {
	now := time.Now()
	exp := now.Add(validity)

	claims := jwt.MapClaims{
		"sub":               identity.Subject,
		authoritiesClaimKey: strings.Join(identity.Authorities, ","),
		"jti":               uuid.NewString(),
		"iat":               now.Unix(),
		"exp":               exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signed, err := t.SignedString(c.key)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verifyは署名と有効期限を検証し、トークンの主体を返す。
func (c *Codec) Verify(signedToken string) (model.Identity, error) {
	parsed, err := jwt.Parse(signedToken, c.keyFunc)
	if err != nil {
		return model.Identity{}, mapParseError(err)
	}
	if parsed == nil || !parsed.Valid {
		return model.Identity{}, ErrMalformed
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return model.Identity{}, ErrMalformed
	}

	return identityFromClaims(claims)
}

// TimeToExpiryは署名済みトークンの残り有効時間を返す。
// 期限切れのトークンでも呼べる（負のDurationが返る）。
func (c *Codec) TimeToExpiry(signedToken string) (time.Duration, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	parsed, err := parser.Parse(signedToken, c.keyFunc)
	if err != nil {
		return 0, mapParseError(err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return 0, ErrMalformed
	}

	return time.Until(time.Unix(int64(exp), 0)), nil
}

// HS512以外の署名方式は受け付けない
func (c *Codec) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method != jwt.SigningMethodHS512 {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return c.key, nil
}

// claimsからIdentityを組み立てる
func identityFromClaims(claims jwt.MapClaims) (model.Identity, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return model.Identity{}, ErrMalformed
	}

	joined, _ := claims[authoritiesClaimKey].(string)

	var authorities []string
	if joined != "" {
		authorities = strings.Split(joined, ",")
	}

	return model.Identity{Subject: sub, Authorities: authorities}, nil
}

// golang-jwtのエラーをこのパッケージのエラーに寄せる
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrUnsupported
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return ErrMalformed
	}
}
