package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	myPostgresRepo "github.com/webxtars/vybh-backend/internal/adapters/db/postgres"
	"github.com/webxtars/vybh-backend/internal/adapters/mail"
	myQueue "github.com/webxtars/vybh-backend/internal/adapters/queue/redis"
	myHTTP "github.com/webxtars/vybh-backend/internal/adapters/transport/http"
	httpmw "github.com/webxtars/vybh-backend/internal/adapters/transport/http/middleware"
	appjwt "github.com/webxtars/vybh-backend/internal/app/auth/jwt"
	authsvc "github.com/webxtars/vybh-backend/internal/app/auth/service"
	"github.com/webxtars/vybh-backend/internal/app/notify"
	usersvc "github.com/webxtars/vybh-backend/internal/app/user/service"
	"github.com/webxtars/vybh-backend/internal/infra/config"
	lg "github.com/webxtars/vybh-backend/internal/infra/log"
	"github.com/webxtars/vybh-backend/internal/infra/server"
	"github.com/webxtars/vybh-backend/internal/migrate"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	redisCli := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisCli.Close()

	validate := validator.New()

	userRepo := myPostgresRepo.NewPostgresUserRepo(db)
	tokenIssuer := appjwt.NewTokenIssuer(cfg)

	var sender mail.Sender
	if cfg.BrevoAPIKey != "" {
		sender = mail.NewBrevoSender(cfg.BrevoAPIKey, cfg.MailFrom)
	} else {
		sender = mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	}
	notifier := notify.New(myQueue.NewRedisMailQueue(redisCli), sender, zapLog)

	userService := usersvc.New(userRepo, notifier, validate, zapLog)
	authService := authsvc.New(userRepo, tokenIssuer, validate)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpmw.RequestLogger(zapLog))
	router.Use(httpmw.Metrics())

	corsConfig := cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			"Authorization",
			"X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	handler := myHTTP.NewHandler(authService, userService, zapLog)
	handler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rootCtx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		return server.Run(ctx, cfg.HTTPAddress, router, zapLog)
	})

	g.Go(func() error {
		return notifier.Run(ctx)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutdown signal received")
	cancel()

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
