package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/robotopup/backend/internal/config"
	"github.com/robotopup/backend/internal/infrastructure/database"
	httpServer "github.com/robotopup/backend/internal/infrastructure/http"
	"github.com/robotopup/backend/internal/infrastructure/telegram"
	"github.com/robotopup/backend/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)

	location, err := time.LoadLocation(cfg.Service.Timezone)
	if err != nil {
		zapLogger.Warn("Unknown timezone, falling back to UTC",
			zap.String("timezone", cfg.Service.Timezone))
		location = time.UTC
	}

	bot := telegram.NewClient(telegram.Config{
		BotToken:    cfg.Telegram.BotToken,
		AdminChatID: cfg.Telegram.AdminChatID,
		BaseURL:     cfg.Telegram.BaseURL,
		CodePrefix:  cfg.Telegram.CodePrefix,
		Timeout:     cfg.Telegram.Timeout,
		Location:    location,
	}, zapLogger)

	// Verify the bot token early; a typo here would silently mute every
	// operator notification.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if info, err := bot.GetMe(startupCtx); err != nil {
		zapLogger.Warn("Bot API not reachable at startup", zap.Error(err))
	} else {
		zapLogger.Info("Bot API connected", zap.String("username", info.Username))
	}
	startupCancel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpSrv := httpServer.NewServer(cfg, zapLogger, repos, bot)

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")

	if err := httpSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
