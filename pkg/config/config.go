package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	StaticDir string

	KafkaBrokers    []string
	KafkaCartTopic  string
	KafkaOrderTopic string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

// Load reads envFile (if it exists) into the process environment and then
// builds the configuration from environment variables.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		} else if err != nil {
			log.Printf("notice: %s not found, using system environment variables", envFile)
		}
	}

	cfg := Config{
		ServiceName: EnvDefault("SERVICE_NAME", "buket_shop"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 3000),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    strings.ToLower(EnvDefault("DB_DRIVER", DriverSQLite)),
		DatabaseURL: EnvDefault("DATABASE_URL", "buket.db"),

		StaticDir: EnvDefault("STATIC_DIR", "public"),

		KafkaBrokers:    CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaCartTopic:  EnvDefault("KAFKA_CART_TOPIC", "cart_events"),
		KafkaOrderTopic: EnvDefault("KAFKA_ORDER_TOPIC", "order_events"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "product"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if err := RequireNonEmpty(c.DatabaseURL, "DATABASE_URL"); err != nil {
		return err
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.ServerPort)
	}
	return nil
}

func (c Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func (c Config) SearchEnabled() bool {
	return c.ESURL != ""
}

func (c Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.ServerPort)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
