package main

import (
	"context"
	"log"

	"app/internal/config"
	"app/internal/directory"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/scheduler"
	"app/internal/server"
	"app/internal/token"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//署名鍵の読み込みはここで1回だけ。壊れたシークレットは起動エラー
	codec, err := token.NewCodec(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		log.Fatalf("signing key: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Authority{},
		&model.RefreshToken{},
		&model.BlacklistedToken{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	blRepo := infraRepo.NewBlacklistRepository(gormDB)

	//資格情報の照合（bcrypt）
	hasher := directory.NewBcryptPasswordHasher(0)
	dir := directory.NewUserDirectory(userRepo, hasher)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(dir, codec, rtRepo, blRepo, validator.NewAuthValidator(), cfg.RefreshTTL)

	//Handler生成
	authH := handler.NewAuthHandler(authUC)
	userH := handler.NewUserHandler(userRepo)

	e := server.New(codec, blRepo, authH, userH)

	//ブラックリスト掃除を毎日1回まわす
	cleanup, err := scheduler.NewBlacklistCleanup(blRepo, cfg.BlacklistCleanupAt, e.Logger)
	if err != nil {
		log.Fatalf("scheduler: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cleanup.Run(ctx)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
