package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type DB struct {
	Driver          string `env:"DRIVER" envDefault:"mysql"`
	URL             string `env:"URL"`
	Host            string `env:"HOST" envDefault:"localhost"`
	Port            string `env:"PORT"`
	User            string `env:"USER"`
	Password        string `env:"PASSWORD"`
	Name            string `env:"DATABASE"`
	SSLMode         string `env:"SSLMODE" envDefault:"disable"`
	ConnectionLimit int    `env:"CONNECTION_LIMIT" envDefault:"10"`
}

type MinIO struct {
	Endpoint   string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey  string `env:"ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey  string `env:"SECRET_KEY" envDefault:"minioadmin"`
	BucketName string `env:"BUCKET" envDefault:"uploads"`
	UseSSL     bool   `env:"USE_SSL" envDefault:"false"`
	Region     string `env:"REGION" envDefault:"us-east-1"`
}

type Upload struct {
	// Backend is "disk" or "minio".
	Backend string `env:"UPLOAD_BACKEND" envDefault:"disk"`
	Dir     string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxSize int64  `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`
}

type RateLimit struct {
	RedisURL string `env:"REDIS_URL"`
	RPS      int    `env:"RATE_LIMIT_RPS" envDefault:"20"`
	Burst    int    `env:"RATE_LIMIT_BURST" envDefault:"40"`
}

type Config struct {
	AppEnv        string `env:"APP_ENV" envDefault:"development"`
	ServerPort    int    `env:"PORT" envDefault:"3001"`
	JWTSecretKey  string `env:"JWT_SECRET,required,notEmpty"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3001"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"20s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// Comma-separated; empty allows any origin.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	DB        DB    `envPrefix:"DB_"`
	MinIO     MinIO `envPrefix:"MINIO_"`
	Upload    Upload
	RateLimit RateLimit
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return []string{"*"}
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))
	for _, origin := range origins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env file not found, using environment variables")
	}

	return Parse()
}

func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.DB.ConnectionLimit < 1 {
		return nil, fmt.Errorf("DB_CONNECTION_LIMIT must be positive, got %d", cfg.DB.ConnectionLimit)
	}

	switch cfg.Upload.Backend {
	case "disk", "minio":
	default:
		return nil, fmt.Errorf("unknown UPLOAD_BACKEND %q", cfg.Upload.Backend)
	}

	return cfg, nil
}
