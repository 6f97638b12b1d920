package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// SyncConfig holds the synchronization job tunables.
type SyncConfig struct {
	LockExpiry      time.Duration `mapstructure:"lock_expiry"`      // lock lease per run
	RenewInterval   time.Duration `mapstructure:"renew_interval"`   // how often a running job extends the lease
	DeliveryTimeout time.Duration `mapstructure:"delivery_timeout"` // per-webhook HTTP timeout
	Fanout          int           `mapstructure:"fanout"`           // max simultaneous webhook deliveries
	ProcessTypes    []string      `mapstructure:"process_types"`    // enabled process types
}

// EnabledProcessTypes returns the allow-list as a set.
func (s SyncConfig) EnabledProcessTypes() map[string]bool {
	set := make(map[string]bool, len(s.ProcessTypes))
	for _, pt := range s.ProcessTypes {
		set[pt] = true
	}
	return set
}

func (s SyncConfig) validate() error {
	if s.LockExpiry <= 0 {
		return fmt.Errorf("sync.lock_expiry must be positive, got %s", s.LockExpiry)
	}
	if s.RenewInterval <= 0 || s.RenewInterval >= s.LockExpiry {
		return fmt.Errorf("sync.renew_interval must be positive and shorter than sync.lock_expiry")
	}
	if s.Fanout <= 0 {
		return fmt.Errorf("sync.fanout must be positive, got %d", s.Fanout)
	}
	return nil
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: DCS_ (Dealer Catalog Sync).
// Nested keys use underscore: DCS_DATABASE_HOST, DCS_SYNC_FANOUT, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "dealer_catalog_sync")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("sync.lock_expiry", "5m")
	v.SetDefault("sync.renew_interval", "100s")
	v.SetDefault("sync.delivery_timeout", "2m")
	v.SetDefault("sync.fanout", 8)
	v.SetDefault("sync.process_types", []string{"ProductList", "CampaignList"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: DCS_DATABASE_HOST -> database.host
	v.SetEnvPrefix("DCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Sync.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
