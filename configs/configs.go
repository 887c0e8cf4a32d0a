// Package configs parses the service configuration from the environment.
package configs

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "MAILSLURPER_"

type Config struct {
	// -- Server --

	Host string `env:"HOST"`
	Port int    `env:"PORT" envDefault:"8090"`
	// Timeout for a single HTTP request to the settings API
	ServerRequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"60s"`
	DisableCORS          bool          `env:"DISABLE_CORS" envDefault:"false"`

	// -- Logging --

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// -- Durable store --

	// One of local, sqlite, psql, mysql, redis, yaml
	StoreType string `env:"STORE_TYPE" envDefault:"sqlite"`
	// Used by sqlite, psql and mysql
	DatabaseDSN  string `env:"DATABASE_DSN" envDefault:"mailslurper-settings.db"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	// Used by redis
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	RedisPrefix string `env:"REDIS_PREFIX" envDefault:"mailslurper"`
	// Used by yaml
	YAMLPath string `env:"YAML_PATH" envDefault:"mailslurper-settings.yaml"`

	// -- Service settings peer --

	// Base URL of the server providing /servicesettings
	PeerURL string `env:"PEER_URL" envDefault:"http://localhost:8080"`
	// Zero means no timeout
	PeerTimeout time.Duration `env:"PEER_TIMEOUT" envDefault:"0"`
	// Zero means a single attempt
	PeerRetries int `env:"PEER_RETRIES" envDefault:"0"`
	// Maximum fetches per second, zero means unlimited
	PeerMaxRate int `env:"PEER_MAX_RATE" envDefault:"0"`

	// -- Served defaults for GET /servicesettings --

	ServiceAddress string `env:"SERVICE_ADDRESS" envDefault:"127.0.0.1"`
	ServicePort    string `env:"SERVICE_PORT" envDefault:"8085"`
	ServiceVersion string `env:"SERVICE_VERSION" envDefault:"v1"`

	// -- Tracing --

	// Traces are exported to Google Cloud Trace when set
	TraceProjectID string `env:"TRACE_PROJECT_ID"`
}

type Options struct {
	EnvFilePath string
}

// ParseConfig parses environment variables and flags to a valid Config.
func ParseConfig(opt *Options) (*Config, error) {
	if opt != nil && opt.EnvFilePath != "" {
		log.Printf("Loading environment from %s", opt.EnvFilePath)
		if err := godotenv.Load(opt.EnvFilePath); err != nil {
			return nil, fmt.Errorf("error while loading env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, err
	}

	// A sql store type implies the gorm dialect.
	switch cfg.StoreType {
	case "sqlite", "psql", "mysql":
		cfg.DatabaseType = cfg.StoreType
	}

	return &cfg, nil
}

// Parse parses the configuration without an env file.
func Parse() (*Config, error) {
	return ParseConfig(nil)
}

// ConfigureLogger sets the global logrus level and formatter.
func ConfigureLogger(level, format string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("Invalid log level %q, using info", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	switch format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	log.SetOutput(os.Stderr)
}
