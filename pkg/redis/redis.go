package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/config"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init connects to Redis. When cfg.Enabled is false the package stays
// disconnected and every helper below degrades to a no-op.
func Init(cfg *config.RedisConfig) error {
	if !cfg.Enabled {
		logger.Info("Redis disabled, token blacklist and OTP cooldown are off", nil)
		return nil
	}

	logger.Info("Initializing Redis connection", map[string]interface{}{
		"addr": cfg.Addr(),
		"db":   cfg.DB,
	})

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"addr": cfg.Addr(),
		})
		_ = c.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	client = c
	logger.Info("Redis connection established successfully", nil)
	return nil
}

// Enabled reports whether a connection is available.
func Enabled() bool {
	return client != nil
}

func GetClient() *redis.Client {
	return client
}

func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		err := client.Close()
		client = nil
		return err
	}
	return nil
}

func blacklistKey(token string) string {
	return "blacklist:" + token
}

func otpCooldownKey(phone, purpose string) string {
	return fmt.Sprintf("otp:cooldown:%s:%s", purpose, phone)
}

// BlacklistToken revokes token until it would have expired anyway.
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	if client == nil || expiry <= 0 {
		return nil
	}

	if err := client.Set(ctx, blacklistKey(token), "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to blacklist token", err, nil)
		return err
	}
	logger.Debug("Token blacklisted", map[string]interface{}{
		"expiry": expiry.String(),
	})
	return nil
}

func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if client == nil {
		return false, nil
	}

	val, err := client.Get(ctx, blacklistKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token blacklist", err, nil)
		return false, err
	}
	return val == "revoked", nil
}

// AcquireOTPCooldown claims the resend slot for phone. It returns false while a
// previous claim is still alive.
func AcquireOTPCooldown(ctx context.Context, phone, purpose string, cooldown time.Duration) (bool, error) {
	if client == nil || cooldown <= 0 {
		return true, nil
	}

	ok, err := client.SetNX(ctx, otpCooldownKey(phone, purpose), time.Now().Unix(), cooldown).Result()
	if err != nil {
		logger.Error("Failed to set OTP cooldown", err, map[string]interface{}{
			"phone": phone,
		})
		return false, err
	}
	return ok, nil
}

// Store adapts the package-level helpers to the interfaces services depend on.
type Store struct{}

func (Store) BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	return BlacklistToken(ctx, token, expiry)
}

func (Store) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	return IsTokenBlacklisted(ctx, token)
}

func (Store) AcquireOTPCooldown(ctx context.Context, phone, purpose string, cooldown time.Duration) (bool, error) {
	return AcquireOTPCooldown(ctx, phone, purpose, cooldown)
}
