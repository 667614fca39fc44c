package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const eventKeyPrefix = "slack:event:"

type Config struct {
	Addr     string
	Password string
	DB       int
}

type IRedis interface {
	// MarkEventSeen records eventID and reports whether it was new.
	MarkEventSeen(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
	Close() error
}

type redisClient struct {
	client *redis.Client
}

func New(cfg Config) IRedis {
	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", cfg.Addr))

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func (r *redisClient) MarkEventSeen(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	key := eventKeyPrefix + eventID
	logrus.Debug(fmt.Sprintf("Marking event %s with expiration %v", key, ttl))

	created, err := r.client.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error marking event %s: %v", key, err))
		return false, err
	}

	if !created {
		logrus.Debug(fmt.Sprintf("Event %s was already seen", key))
	}
	return created, nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
