package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv убирает STOREFRONT_* из окружения теста.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "STOREFRONT_") {
			t.Setenv(name, "")
		}
	}
}

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GRPCAddr != ":50051" {
		t.Errorf("expected GRPCAddr :50051, got %s", cfg.GRPCAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected MetricsAddr :9090, got %s", cfg.MetricsAddr)
	}
	if cfg.StorageDriver != StorageDriverSQLite {
		t.Errorf("expected StorageDriver %s, got %s", StorageDriverSQLite, cfg.StorageDriver)
	}
	if !strings.HasSuffix(cfg.SQLitePath, "storefront.db") {
		t.Errorf("unexpected SQLitePath %s", cfg.SQLitePath)
	}
	if cfg.PaymentDelay != 2*time.Second {
		t.Errorf("expected PaymentDelay 2s, got %s", cfg.PaymentDelay)
	}
	if !cfg.PostgresAutoMigrate {
		t.Error("expected PostgresAutoMigrate to be true")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must be valid: %v", err)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api_url: https://shop.example.com/api
storage_driver: memory
payment_delay: 500ms
kafka_brokers: [kafka-1:9092]
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("STOREFRONT_KAFKA_BROKERS", "kafka-2:9092, ,kafka-3:9092")
	t.Setenv("STOREFRONT_SYNC_INTERVAL", "1m")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "https://shop.example.com/api", cfg.APIURL)
	require.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	require.Equal(t, 500*time.Millisecond, cfg.PaymentDelay)
	require.Equal(t, []string{"kafka-2:9092", "kafka-3:9092"}, cfg.KafkaBrokers)
	require.Equal(t, time.Minute, cfg.SyncInterval)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, ":50051", cfg.GRPCAddr, "unset keys keep defaults")
}

func TestLoadConfig_InvalidInput(t *testing.T) {
	clearEnv(t)

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api_url: [unterminated"), 0o600))
		_, err := LoadConfig(path)
		require.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("STOREFRONT_PAYMENT_DELAY", "soon")
		_, err := LoadConfig("")
		require.ErrorContains(t, err, "STOREFRONT_PAYMENT_DELAY")
	})
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.APIURL = "https://api.example.com"
	cfg.StorageDriver = StorageDriverPostgres
	cfg.PostgresDSN = "postgres://storefront@localhost/storefront"
	cfg.KafkaBrokers = []string{"kafka:9092"}

	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "relative api url", mutate: func(c *Config) { c.APIURL = "/api" }, wantErr: "api_url"},
		{name: "ftp api url", mutate: func(c *Config) { c.APIURL = "ftp://host/api" }, wantErr: "api_url"},
		{name: "unknown driver", mutate: func(c *Config) { c.StorageDriver = "redis" }, wantErr: "unsupported storage driver"},
		{name: "sqlite without path", mutate: func(c *Config) { c.SQLitePath = "" }, wantErr: "sqlite_path"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.StorageDriver = StorageDriverPostgres }, wantErr: "postgres_dsn"},
		{name: "zero timeout", mutate: func(c *Config) { c.HTTPTimeout = 0 }, wantErr: "http_timeout"},
		{name: "zero sync interval", mutate: func(c *Config) { c.SyncInterval = 0 }, wantErr: "sync_interval"},
		{name: "negative payment delay", mutate: func(c *Config) { c.PaymentDelay = -time.Second }, wantErr: "payment_delay"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "log_level"},
		{name: "memory", mutate: func(c *Config) { c.StorageDriver = StorageDriverMemory; c.SQLitePath = "" }},
		{name: "zero payment delay", mutate: func(c *Config) { c.PaymentDelay = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
