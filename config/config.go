package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"flatly-backend/storage"

	"github.com/joho/godotenv"
)

type DBConfig struct {
	Driver          string
	URL             string
	User            string
	Password        string
	Host            string
	Port            string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

type StorageConfig struct {
	Driver string
	Local  storage.LocalConfig
	S3     storage.S3Config
}

type AppConfig struct {
	Port        string
	CorsOrigins []string
	SeedData    bool
	Database    DBConfig
	Storage     StorageConfig
}

// Load reads .env (optional) and builds the configuration from the
// environment. Explicit paths are loaded instead of ./.env when given.
func Load(envPath ...string) (*AppConfig, error) {
	if err := godotenv.Load(envPath...); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	maxOpen, err := envInt("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return nil, err
	}
	maxIdle, err := envInt("DB_MAX_IDLE_CONNS", 10)
	if err != nil {
		return nil, err
	}
	lifetime, err := envDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	seed, err := envBool("SEED_DATA", false)
	if err != nil {
		return nil, err
	}

	driver := strings.ToLower(envOrDefault("DB_DRIVER", "mysql"))
	defaultPort, defaultUser := "3306", "root"
	if driver == "postgres" {
		defaultPort, defaultUser = "5432", "postgres"
	}

	dbURL := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if dbURL == "" {
		dbURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	cfg := &AppConfig{
		Port:        envOrDefault("PORT", "8080"),
		CorsOrigins: parseList(os.Getenv("CORS_ORIGINS")),
		SeedData:    seed,
		Database: DBConfig{
			Driver:          driver,
			URL:             dbURL,
			User:            envOrDefault("DB_USER", defaultUser),
			Password:        os.Getenv("DB_PASS"),
			Host:            envOrDefault("DB_HOST", "127.0.0.1"),
			Port:            envOrDefault("DB_PORT", defaultPort),
			Name:            envOrDefault("DB_NAME", "flatly_db"),
			MaxOpenConns:    maxOpen,
			MaxIdleConns:    maxIdle,
			ConnMaxLifetime: lifetime,
			LogLevel:        strings.ToLower(envOrDefault("DB_LOG_LEVEL", "warn")),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(envOrDefault("STORAGE_DRIVER", "local")),
			Local: storage.LocalConfig{
				Dir:     envOrDefault("UPLOAD_DIR", "./uploads"),
				BaseURL: strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
			},
			S3: storage.S3Config{
				Bucket:        os.Getenv("AWS_S3_BUCKET"),
				Region:        envOrDefault("AWS_REGION", "us-east-1"),
				AccessKey:     os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretKey:     os.Getenv("AWS_SECRET_ACCESS_KEY"),
				Endpoint:      os.Getenv("AWS_S3_ENDPOINT"),
				PublicBaseURL: os.Getenv("AWS_S3_PUBLIC_URL"),
			},
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want mysql or postgres)", c.Database.Driver)
	}
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("STORAGE_DRIVER=s3 requires AWS_S3_BUCKET")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q (want local or s3)", c.Storage.Driver)
	}
	return nil
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func envBool(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

// parseList splits a comma separated value. An empty list means "*".
func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
