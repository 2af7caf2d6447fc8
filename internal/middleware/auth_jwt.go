package middleware

import (
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

const (
	CtxUsernameKey    = "username"    // string
	CtxAuthoritiesKey = "authorities" // []string
)

// トークン検証の約束（実装はtokenパッケージ）
type TokenVerifier interface {
	Verify(signedToken string) (model.Identity, error)
}

// bearerAuth用のJWT検証ミドルウェア。
// トークンが無い・壊れている・ブラックリスト済みでもここでは落とさず、
// 匿名のまま次に進める。保護はRequireAuth/AuthorityGuard側で行う。
func Authenticate(verifier TokenVerifier, blacklist repository.BlacklistRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダからtokenを抜く
			rawToken := resolveToken(c)
			if rawToken == "" {
				return next(c)
			}

			//署名検証より先にブラックリストを見る
			revoked, err := blacklist.IsBlacklisted(c.Request().Context(), rawToken, time.Now())
			if err != nil || revoked {
				if revoked {
					c.Logger().Debugf("blacklisted token, uri: %s", c.Request().RequestURI)
				}
				return next(c)
			}

			//署名と有効期限を検証する
			identity, err := verifier.Verify(rawToken)
			if err != nil {
				c.Logger().Debugf("invalid token: %v, uri: %s", err, c.Request().RequestURI)
				return next(c)
			}

			//contextへ保存
			c.Set(CtxUsernameKey, identity.Subject)
			c.Set(CtxAuthoritiesKey, identity.Authorities)

			return next(c)
		}
	}
}

// Bearer形式のAuthorizationヘッダからトークンを取り出す。無ければ空文字。
func resolveToken(c echo.Context) string {
	authz := c.Request().Header.Get(echo.HeaderAuthorization)
	if authz == "" {
		return ""
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// Authenticateが保存したIdentityを取り出す。匿名ならfalse。
func IdentityFrom(c echo.Context) (model.Identity, bool) {
	username, ok := c.Get(CtxUsernameKey).(string)
	if !ok || username == "" {
		return model.Identity{}, false
	}

	authorities, _ := c.Get(CtxAuthoritiesKey).([]string)

	return model.Identity{Subject: username, Authorities: authorities}, true
}
