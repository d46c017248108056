package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"

	"foodgram/internal/app"
	"foodgram/internal/config"
	"foodgram/internal/database"
	jwtsvc "foodgram/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	logLevel := logger.Warn
	if cfg.IsProdLike() {
		logLevel = logger.Error
	}
	db, err := database.Connect(cfg.DatabaseURL, database.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		LogLevel:        logLevel,
	})
	if err != nil {
		log.Fatal(err)
	}

	if cfg.DBAutoMigrate {
		if err := database.Migrate(db, cfg.DatabaseURL); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	// Tokens are issued by the auth provider.
	j := jwtsvc.New(cfg.JWTSecret)

	r, err := app.NewRouter(app.Deps{
		DB:          db,
		JWT:         j,
		CORSOrigins: cfg.CORSAllowedOrigins,
		AccessLog:   true,
	})
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("http server listening addr=%s env=%s", cfg.HTTPAddr, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("server stopped")
}
