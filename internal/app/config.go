package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// StorageDriver выбирает бэкенд локального хранилища (токены, корзина).
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverSQLite   StorageDriver = "sqlite"
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config описывает настройки клиента и агента.
type Config struct {
	APIURL      string        `yaml:"api_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	StorageDriver       StorageDriver `yaml:"storage_driver"`
	SQLitePath          string        `yaml:"sqlite_path"`
	PostgresDSN         string        `yaml:"postgres_dsn"`
	PostgresNamespace   string        `yaml:"postgres_namespace"`
	PostgresAutoMigrate bool          `yaml:"postgres_auto_migrate"`

	KafkaBrokers []string `yaml:"kafka_brokers"`

	GRPCAddr     string        `yaml:"grpc_addr"`
	MetricsAddr  string        `yaml:"metrics_addr"`
	SyncInterval time.Duration `yaml:"sync_interval"`

	PaymentDelay time.Duration `yaml:"payment_delay"`
	LogLevel     string        `yaml:"log_level"`
}

// DefaultConfig возвращает настройки по умолчанию: локальный API разработки и SQLite в домашнем каталоге.
func DefaultConfig() Config {
	return Config{
		APIURL:              "http://127.0.0.1:8000/api",
		HTTPTimeout:         15 * time.Second,
		StorageDriver:       StorageDriverSQLite,
		SQLitePath:          filepath.Join(stateDir(), "storefront.db"),
		PostgresNamespace:   "default",
		PostgresAutoMigrate: true,
		GRPCAddr:            ":50051",
		MetricsAddr:         ":9090",
		SyncInterval:        30 * time.Second,
		PaymentDelay:        2 * time.Second,
		LogLevel:            "info",
	}
}

// DefaultConfigPath — ~/.storefront/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(stateDir(), "config.yaml")
}

func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".storefront"
	}
	return filepath.Join(home, ".storefront")
}

// LoadConfig читает YAML-файл поверх значений по умолчанию и применяет переменные
// окружения STOREFRONT_*. Отсутствующий файл — не ошибка.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save записывает конфигурацию в YAML.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("STOREFRONT_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("STOREFRONT_STORAGE_DRIVER"); v != "" {
		c.StorageDriver = StorageDriver(strings.ToLower(v))
	}
	if v := os.Getenv("STOREFRONT_SQLITE_PATH"); v != "" {
		c.SQLitePath = v
	}
	if v := os.Getenv("STOREFRONT_POSTGRES_DSN"); v != "" {
		c.PostgresDSN = v
	}
	if v := os.Getenv("STOREFRONT_KAFKA_BROKERS"); v != "" {
		c.KafkaBrokers = splitBrokers(v)
	}
	if v := os.Getenv("STOREFRONT_METRICS_ADDR"); v != "" {
		c.MetricsAddr = v
	}
	if v := os.Getenv("STOREFRONT_GRPC_ADDR"); v != "" {
		c.GRPCAddr = v
	}
	if v := os.Getenv("STOREFRONT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	durations := []struct {
		env    string
		target *time.Duration
	}{
		{"STOREFRONT_PAYMENT_DELAY", &c.PaymentDelay},
		{"STOREFRONT_SYNC_INTERVAL", &c.SyncInterval},
		{"STOREFRONT_HTTP_TIMEOUT", &c.HTTPTimeout},
	}
	for _, d := range durations {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", d.env, v, err)
		}
		*d.target = parsed
	}
	return nil
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url must be an absolute http(s) URL, got %q", c.APIURL)
	}

	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite_path is required for sqlite storage")
		}
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("postgres_dsn is required for postgres storage")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.StorageDriver)
	}

	if c.HTTPTimeout <= 0 {
		return errors.New("http_timeout must be positive")
	}
	if c.SyncInterval <= 0 {
		return errors.New("sync_interval must be positive")
	}
	if c.PaymentDelay < 0 {
		return errors.New("payment_delay must not be negative")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// ConfigureLogging выставляет уровень и формат logrus.
func (c Config) ConfigureLogging() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
