package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/leandrotelles/nutricoach-bot/internal/bot"
	"github.com/leandrotelles/nutricoach-bot/internal/config"
	"github.com/leandrotelles/nutricoach-bot/internal/logger"
	"github.com/leandrotelles/nutricoach-bot/internal/services"
	"github.com/leandrotelles/nutricoach-bot/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Starting NutriCoach Bot...")

	store, err := newStore(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}
	logger.Info("Storage initialized", "backend", string(cfg.Storage))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	aiService, err := services.NewAIService(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logger.Fatalf("Failed to initialize AI service: %v", err)
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, store, aiService)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Bot stopped with error", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	wg.Wait()
}

func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage {
	case config.BackendRedis:
		return storage.NewRedisStore(cfg.Redis.Host, cfg.Redis.Port)
	case config.BackendPostgres:
		return storage.NewPostgresStore(cfg.DB)
	default:
		return storage.NewMemoryStore(), nil
	}
}
