package usecase

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 認証失敗
	ErrInvalidCredentials = errors.New("invalid credentials")
	//400 リフレッシュトークンが存在しない
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	//400 失効済み・期限切れ・競合に負けた（呼び出し側には区別させない）
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	//400 デバイス情報の不一致
	ErrDeviceMismatch = errors.New("device mismatch")
	//400 壊れたアクセストークン
	ErrInvalidToken = errors.New("invalid token")
	//500
	ErrInternal = errors.New("internal error")
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateLogin(ctx context.Context, username string, password string) error
	ValidateRefresh(ctx context.Context, refreshToken string) error
	ValidateLogout(ctx context.Context, accessToken string) error
}

// トークンの発行・検証の約束（実装はtokenパッケージ）
type TokenCodec interface {
	IssueAccessToken(identity model.Identity) (string, error)
	IssueRefreshToken(identity model.Identity) (string, error)
	Verify(signedToken string) (model.Identity, error)
	TimeToExpiry(signedToken string) (time.Duration, error)
}

// 資格情報の照合の約束（実装はdirectoryパッケージ）
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username string, password string) (model.Identity, error)
}

type AuthLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// 発行済みのアクセス＋リフレッシュのペア
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthUsecase struct {
	dir        CredentialVerifier
	codec      TokenCodec
	rtRepo     repository.RefreshTokenRepository
	blacklist  repository.BlacklistRepository
	validator  AuthValidator
	refreshTTL time.Duration
}

func NewAuthUsecase(
	dir CredentialVerifier,
	codec TokenCodec,
	rtRepo repository.RefreshTokenRepository,
	blacklist repository.BlacklistRepository,
	validator AuthValidator,
	refreshTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		dir:        dir,
		codec:      codec,
		rtRepo:     rtRepo,
		blacklist:  blacklist,
		validator:  validator,
		refreshTTL: refreshTTL,
	}
}

// Loginは資格情報を照合してアクセス＋リフレッシュのペアを発行する。
// 失敗時はトークンを一切発行しない。
func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest, deviceInfo string) (*TokenPair, error) {
	//入力検証
	if err := u.validator.ValidateLogin(ctx, req.Username, req.Password); err != nil {
		return nil, err
	}

	//資格情報の照合はUserDirectoryに委譲
	identity, err := u.dir.VerifyCredentials(ctx, req.Username, req.Password)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	//access token発行
	accessToken, err := u.codec.IssueAccessToken(identity)
	if err != nil {
		return nil, ErrInternal
	}

	//refresh token発行とDB保存（デバイス情報に紐付ける）
	refreshToken, err := u.codec.IssueRefreshToken(identity)
	if err != nil {
		return nil, ErrInternal
	}

	rt := &model.RefreshToken{
		Token:      refreshToken,
		Username:   identity.Subject,
		ExpiresAt:  time.Now().Add(u.refreshTTL),
		Revoked:    false,
		DeviceInfo: deviceInfo,
	}

	if err := u.rtRepo.Create(ctx, rt); err != nil {
		return nil, ErrInternal
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refreshは旧リフレッシュトークンを1回だけ消費して新しいペアを発行する。
// 同じトークンでの同時リフレッシュは片方しか勝てない。
func (u *AuthUsecase) Refresh(ctx context.Context, refreshTokenValue string, deviceInfo string) (*TokenPair, error) {
	//入力検証
	if err := u.validator.ValidateRefresh(ctx, refreshTokenValue); err != nil {
		return nil, err
	}

	//DB照合
	rt, err := u.rtRepo.FindByToken(ctx, refreshTokenValue)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, ErrInternal
	}

	//失効済みか期限切れ
	if rt.IsExpired(time.Now()) {
		return nil, ErrRefreshTokenExpired
	}

	//デバイス情報違いは再ログイン扱い
	if rt.DeviceInfo != deviceInfo {
		return nil, ErrDeviceMismatch
	}

	//主体はリフレッシュトークン自身のclaimsから取り出す（署名検証込み）
	identity, err := u.codec.Verify(refreshTokenValue)
	if err != nil {
		return nil, ErrRefreshTokenExpired
	}

	//旧tokenをrevokedにする。条件付き更新なので競合の敗者はここで落ちる
	if err := u.rtRepo.MarkRevoked(ctx, rt.Token); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenRevoked) {
			return nil, ErrRefreshTokenExpired
		}
		return nil, ErrInternal
	}

	//新tokenを作って保存
	newRefreshToken, err := u.codec.IssueRefreshToken(identity)
	if err != nil {
		return nil, ErrInternal
	}

	newRT := &model.RefreshToken{
		Token:      newRefreshToken,
		Username:   identity.Subject,
		ExpiresAt:  time.Now().Add(u.refreshTTL),
		Revoked:    false,
		DeviceInfo: deviceInfo,
	}

	if err := u.rtRepo.Create(ctx, newRT); err != nil {
		return nil, ErrInternal
	}

	//access再発行
	accessToken, err := u.codec.IssueAccessToken(identity)
	if err != nil {
		return nil, ErrInternal
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logoutはアクセストークンを残り有効時間つきでブラックリストに登録する。
// すでに期限切れならなにもせず成功。二重ログアウトもエラーにしない。
func (u *AuthUsecase) Logout(ctx context.Context, accessToken string) error {
	if err := u.validator.ValidateLogout(ctx, accessToken); err != nil {
		return err
	}

	remaining, err := u.codec.TimeToExpiry(accessToken)
	if err != nil {
		return ErrInvalidToken
	}

	//期限切れのトークンは再利用できないので登録不要
	if remaining <= 0 {
		return nil
	}

	if err := u.blacklist.Add(ctx, accessToken, time.Now().Add(remaining)); err != nil {
		return ErrInternal
	}

	return nil
}
