package shared

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":5000"`
	MetricsAddr string `envconfig:"METRICS_ADDR"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"sqlite"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"reviews.db"`
	MySQLDSN    string `envconfig:"MYSQL_DSN" default:"root:root@tcp(localhost:3306)/reviews?charset=utf8mb4&loc=UTC"`

	KeywordsFile string `envconfig:"KEYWORDS_FILE"`

	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	RateLimitRPS    float64       `envconfig:"RATE_LIMIT_RPS" default:"0"`
	RateLimitBurst  int           `envconfig:"RATE_LIMIT_BURST" default:"10"`

	IngestWorkers int    `envconfig:"INGEST_WORKERS" default:"4"`
	IngestFile    string `envconfig:"INGEST_FILE"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	switch c.StoreDriver {
	case "sqlite", "mysql":
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER must be sqlite or mysql, got %q", c.StoreDriver)
	}
	if c.RateLimitRPS < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	return c, nil
}
