package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Session storage backends.
const (
	SessionBackendFile  = "file"
	SessionBackendRedis = "redis"
	SessionBackendMongo = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API      APIConfig
	Session  SessionConfig
	Sync     SyncConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Receipts ReceiptsConfig
}

// APIConfig points at the marketplace backend.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:4000"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

type SessionConfig struct {
	Backend string `env:"SESSION_BACKEND,  default=file"`
	FileDir string `env:"SESSION_FILE_DIR, default=./.renova"`
	Key     string `env:"SESSION_KEY,      default=renova_auth"`
	// Secret, when set, seals the persisted record at rest.
	Secret string        `env:"SESSION_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL, default=0s"`
}

type SyncConfig struct {
	Workers int `env:"SYNC_WORKERS, default=4"`
}

type RedisConfig struct {
	URL  string `env:"REDIS_URL"`
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=renova_storefront"`
}

// ReceiptsConfig enables the MinIO ticket archive.
type ReceiptsConfig struct {
	Enabled   bool   `env:"RECEIPTS_ENABLED, default=false"`
	Endpoint  string `env:"MINIO_ENDPOINT,   default=localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET,     default=renova-tickets"`
	UseSSL    bool   `env:"MINIO_USE_SSL,    default=false"`
}

// IsDevelopment reports whether pretty console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads a .env file when present, then the environment, using go-envconfig.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := Parse(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// Parse resolves the configuration from lookuper and validates it.
func Parse(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}

	switch cfg.Session.Backend {
	case SessionBackendFile, SessionBackendRedis, SessionBackendMongo:
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.Session.Backend)
	}
	if cfg.Sync.Workers <= 0 {
		return nil, fmt.Errorf("SYNC_WORKERS must be positive, got %d", cfg.Sync.Workers)
	}
	return &cfg, nil
}
