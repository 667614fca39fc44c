package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"FaceReporter/internal/config"
	"FaceReporter/pkg/log"
	"FaceReporter/pkg/redis"
	"FaceReporter/pkg/slack"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 2 * time.Minute

func main() {
	// a missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.LoadAppConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "Failed to load configuration")
	}

	logger := log.NewLogger(log.Options{
		Level:  cfg.App.LogLevel,
		Env:    cfg.App.Env,
		LogDir: cfg.App.LogDir,
	})

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	slackClient := slack.New(cfg.Slack.AccessToken, cfg.Slack.APIURL, nil, cfg.Pipeline.MaxFileSize)

	options := []config.ServerOption{
		config.WithFiber(fiberApp),
		config.WithConfig(cfg),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithSlackClient(slackClient),
		config.WithMiddleware(),
		config.WithAWSClients(),
		config.WithUtils(),
	}
	if cfg.Redis.Address != "" {
		options = append(options, config.WithRedisServer(redis.New(redis.Config{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})))
	} else {
		logger.Warn("REDIS_ADDRESS not set, retried Slack deliveries will be processed again")
	}

	server, err := config.NewServer(options...)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown did not complete cleanly: %v", err)
		return
	}
	logger.Info("Server stopped")
}
