package cmd

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Task backends accepted by TASK_BACKEND.
const (
	TaskBackendRedis    = "redis"
	TaskBackendPostgres = "postgres"
)

type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	DBHost        string `env:"DB_HOST,notEmpty"`
	DBPort        string `env:"DB_PORT" envDefault:"5432"`
	DBUser        string `env:"DB_USER,notEmpty"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBName        string `env:"DB_NAME,notEmpty"`
	DBSslMode     string `env:"DB_SSLMODE" envDefault:"disable"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	TaskBackend      string        `env:"TASK_BACKEND" envDefault:"redis"`
	TaskWorkers      int           `env:"TASK_WORKERS" envDefault:"8"`
	TaskBatchSize    int           `env:"TASK_BATCH_SIZE" envDefault:"64"`
	TaskMaxAttempts  int           `env:"TASK_MAX_ATTEMPTS" envDefault:"5"`
	TaskRetryBackoff time.Duration `env:"TASK_RETRY_BACKOFF" envDefault:"2s"`
	TaskLeaseTimeout time.Duration `env:"TASK_LEASE_TIMEOUT" envDefault:"30s"`
	TaskKeyPrefix    string        `env:"TASK_KEY_PREFIX" envDefault:"jobmatch:tasks"`

	ImmediateJobTTL          time.Duration `env:"IMMEDIATE_JOB_TTL" envDefault:"5m"`
	OfferConfirmationTimeout time.Duration `env:"OFFER_CONFIRMATION_TIMEOUT" envDefault:"5m"`
	ExpirySweepBatch         int           `env:"EXPIRY_SWEEP_BATCH" envDefault:"100"`
	GeoMatcher               string        `env:"GEO_MATCHER" envDefault:"indexed"`
	NotifyChannel            string        `env:"NOTIFY_CHANNEL" envDefault:"jobmatch:notifications"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	ValidateRequests   bool     `env:"VALIDATE_REQUESTS" envDefault:"true"`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the values env tags cannot express.
func (c Config) Validate() error {
	switch c.TaskBackend {
	case TaskBackendRedis, TaskBackendPostgres:
	default:
		return fmt.Errorf("TASK_BACKEND must be %q or %q, got %q", TaskBackendRedis, TaskBackendPostgres, c.TaskBackend)
	}
	if c.TaskWorkers < 1 || c.TaskBatchSize < 1 || c.TaskMaxAttempts < 1 {
		return fmt.Errorf("TASK_WORKERS, TASK_BATCH_SIZE and TASK_MAX_ATTEMPTS must be positive")
	}
	if c.ImmediateJobTTL <= 0 || c.OfferConfirmationTimeout <= 0 {
		return fmt.Errorf("IMMEDIATE_JOB_TTL and OFFER_CONFIRMATION_TIMEOUT must be positive")
	}
	return nil
}

// DSN builds the libpq connection string used by both gorm and pgx.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
