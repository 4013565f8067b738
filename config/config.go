package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Storage   StorageConfig
	Redis     RedisConfig
	SMS       SMSConfig
	OTP       OTPConfig
	Scheduler SchedulerConfig
	Admin     AdminSeedConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// StorageConfig selects where uploaded photos and PDFs end up.
// Driver is "local" (files under LocalDir, served at PublicBaseURL) or "s3".
type StorageConfig struct {
	Driver        string
	LocalDir      string
	PublicBaseURL string
	MaxUploadSize int64
	S3            S3Config
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// SMSConfig holds Naver Cloud SENS credentials. Empty values switch the
// gateway to log-only mode.
type SMSConfig struct {
	ServiceID  string
	AccessKey  string
	SecretKey  string
	FromNumber string
}

type OTPConfig struct {
	Length         int
	TTL            time.Duration
	ResendCooldown time.Duration
}

type SchedulerConfig struct {
	OfferExpirySpec string
}

// AdminSeedConfig is the bootstrap admin account created on first migration.
type AdminSeedConfig struct {
	Phone    string
	Password string
	Name     string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "fodz"),
			Password: getEnv("DB_PASSWORD", "fodz"),
			DBName:   getEnv("DB_NAME", "fodz"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key"),
			AccessTokenExpiry:  parseDuration(getEnv("JWT_ACCESS_TOKEN_EXPIRY", "15m"), 15*time.Minute),
			RefreshTokenExpiry: parseDuration(getEnv("JWT_REFRESH_TOKEN_EXPIRY", "168h"), 168*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Storage: StorageConfig{
			Driver:        getEnv("STORAGE_DRIVER", "local"),
			LocalDir:      getEnv("UPLOAD_DIR", "./uploads"),
			PublicBaseURL: getEnv("UPLOAD_PUBLIC_BASE_URL", "/uploads"),
			MaxUploadSize: parseInt64(getEnv("UPLOAD_MAX_SIZE", "5242880"), 5<<20),
			S3: S3Config{
				Region:          getEnv("AWS_REGION", "eu-central-1"),
				Bucket:          getEnv("AWS_S3_BUCKET", "fodz-uploads"),
				AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
				BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
			},
		},
		Redis: RedisConfig{
			Enabled:  getEnv("REDIS_ENABLED", "false") == "true",
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       int(parseInt64(getEnv("REDIS_DB", "0"), 0)),
		},
		SMS: SMSConfig{
			ServiceID:  getEnv("NAVER_SENS_SERVICE_ID", ""),
			AccessKey:  getEnv("NAVER_SENS_ACCESS_KEY", ""),
			SecretKey:  getEnv("NAVER_SENS_SECRET_KEY", ""),
			FromNumber: getEnv("NAVER_SENS_FROM_NUMBER", ""),
		},
		OTP: OTPConfig{
			Length:         int(parseInt64(getEnv("OTP_LENGTH", "6"), 6)),
			TTL:            parseDuration(getEnv("OTP_TTL", "5m"), 5*time.Minute),
			ResendCooldown: parseDuration(getEnv("OTP_RESEND_COOLDOWN", "60s"), time.Minute),
		},
		Scheduler: SchedulerConfig{
			OfferExpirySpec: getEnv("OFFER_EXPIRY_CRON", "*/10 * * * *"),
		},
		Admin: AdminSeedConfig{
			Phone:    getEnv("ADMIN_PHONE", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
			Name:     getEnv("ADMIN_NAME", "admin"),
		},
	}

	if config.Storage.Driver != "local" && config.Storage.Driver != "s3" {
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q (supported: local, s3)", config.Storage.Driver)
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt64(s string, fallback int64) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return v
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
