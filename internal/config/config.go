package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）

	JWTSecret  string        // JWT署名シークレット（base64）
	AccessTTL  time.Duration // アクセストークンの有効期限
	RefreshTTL time.Duration // リフレッシュトークンの有効期限

	BlacklistCleanupAt string // ブラックリスト掃除の時刻（"HH:MM"、毎日）

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := mustAtoi("POSTGRES_PORT")
	if err != nil {
		return Config{}, err
	}

	accessSeconds, err := mustAtoi("ACCESS_TOKEN_VALIDITY_SECONDS")
	if err != nil {
		return Config{}, err
	}

	refreshSeconds, err := mustAtoi("REFRESH_TOKEN_VALIDITY_SECONDS")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,

		JWTSecret:  os.Getenv("JWT_SECRET"),
		AccessTTL:  time.Duration(accessSeconds) * time.Second,
		RefreshTTL: time.Duration(refreshSeconds) * time.Second,

		BlacklistCleanupAt: os.Getenv("BLACKLIST_CLEANUP_AT"),

		GoEnv: os.Getenv("GO_ENV"),
	}

	//掃除時刻は毎日0時がデフォルト
	if cfg.BlacklistCleanupAt == "" {
		cfg.BlacklistCleanupAt = "00:00"
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.PostgresUser == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required")
	}
	if cfg.PostgresHost == "" {
		return Config{}, fmt.Errorf("POSTGRES_HOST is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AccessTTL <= 0 {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_VALIDITY_SECONDS must be positive")
	}
	if cfg.RefreshTTL <= 0 {
		return Config{}, fmt.Errorf("REFRESH_TOKEN_VALIDITY_SECONDS must be positive")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}

	return cfg, nil
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
