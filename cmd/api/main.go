package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LaundryServices01/laundry-admin/internal/auth"
	"github.com/LaundryServices01/laundry-admin/internal/config"
	dbpkg "github.com/LaundryServices01/laundry-admin/internal/db"
	"github.com/LaundryServices01/laundry-admin/internal/mailer"
	"github.com/LaundryServices01/laundry-admin/internal/middleware"
	"github.com/LaundryServices01/laundry-admin/internal/routes"
)

func main() {

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)

	var store auth.TokenStore
	if cfg.RedisURL != "" {
		store, err = auth.NewRedisTokenStore(cfg.RedisURL)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
	} else {
		store = auth.NewMemoryTokenStore()
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, store, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	mailService, err := mailer.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to configure mailer", zap.Error(err))
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, tokens, mailService, logger)

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
