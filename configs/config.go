package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

// EnvPrefix prefixes every environment variable read by Load.
// Nesting uses a double underscore: GOAPP_TODOS__MONGO__URI -> todos.mongo.uri.
const EnvPrefix = "GOAPP_"

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type SentryConfig struct {
	DSN         string `koanf:"dsn"`
	Environment string `koanf:"environment"`
}

type BooksConfig struct {
	Addr          string `koanf:"addr"`
	MetricsAddr   string `koanf:"metrics_addr"`
	SessionSecret string `koanf:"session_secret"`
	// RedisAddr switches session storage from cookies to redis when set.
	RedisAddr string `koanf:"redis_addr"`
}

type MongoConfig struct {
	URI      string `koanf:"uri"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	Endpoint string `koanf:"endpoint"`
	Database string `koanf:"database"`
}

type TodosConfig struct {
	Addr        string `koanf:"addr"`
	MetricsAddr string `koanf:"metrics_addr"`
	// Backend is sqlite, postgres or mongo.
	Backend string      `koanf:"backend"`
	DSN     string      `koanf:"dsn"`
	Mongo   MongoConfig `koanf:"mongo"`
}

type SwaggerConfig struct {
	Host string `koanf:"host"`
}

type Config struct {
	Log             LogConfig     `koanf:"log"`
	Sentry          SentryConfig  `koanf:"sentry"`
	Books           BooksConfig   `koanf:"books"`
	Todos           TodosConfig   `koanf:"todos"`
	Swagger         SwaggerConfig `koanf:"swagger"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Books: BooksConfig{
			Addr:          ":8080",
			MetricsAddr:   ":8081",
			SessionSecret: "secret",
		},
		Todos: TodosConfig{
			Addr:        ":8090",
			MetricsAddr: ":8091",
			Backend:     "sqlite",
			DSN:         "todos.db",
			Mongo:       MongoConfig{Database: "records"},
		},
		Swagger:         SwaggerConfig{Host: "localhost:8080"},
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, later sources overriding earlier ones. A .env file in the
// working directory is loaded into the environment first.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment variables")
	}

	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envTransformer := func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformer), nil); err != nil {
		return cfg, fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations no service can start with.
func (c Config) Validate() error {
	switch c.Todos.Backend {
	case "sqlite", "postgres":
		if c.Todos.DSN == "" {
			return fmt.Errorf("todos.dsn is required for backend %s", c.Todos.Backend)
		}
	case "mongo":
		if c.Todos.Mongo.URI == "" && c.Todos.Mongo.Endpoint == "" {
			return fmt.Errorf("todos.mongo.uri or todos.mongo.endpoint is required for backend mongo")
		}
	default:
		return fmt.Errorf("unknown todos.backend %q", c.Todos.Backend)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}
	return nil
}
