package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/salesdash-lab/salesdash/internal/core/sales"
)

// Config represents the top-level application config.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Source    SourceConfig    `koanf:"source"`
	Database  DatabaseConfig  `koanf:"database"`
	Columns   sales.Columns   `koanf:"columns"`
	Dashboard DashboardConfig `koanf:"dashboard"`
}

type ServerConfig struct {
	Port            int    `koanf:"port"`
	Host            string `koanf:"host"`
	MaxBodySizeMB   int    `koanf:"max_body_size_mb"`
	Mode            string `koanf:"mode"` // debug | release
	ShutdownTimeout string `koanf:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `koanf:"level"` // debug | info | warn | error
}

type SourceConfig struct {
	Type  string `koanf:"type"` // csv | xlsx | postgres
	Path  string `koanf:"path"`
	Sheet string `koanf:"sheet"` // xlsx only; empty means the first sheet
}

type DatabaseConfig struct {
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type DashboardConfig struct {
	DefaultCategories int    `koanf:"default_categories"`
	DefaultWarehouses int    `koanf:"default_warehouses"`
	SummaryLimit      int    `koanf:"summary_limit"`
	LabelMaxLen       int    `koanf:"label_max_len"`
	PalettePath       string `koanf:"palette_path"`
	ViewCacheSize     int    `koanf:"view_cache_size"`
	MaxSessions       int    `koanf:"max_sessions"`
}

const (
	SourceCSV      = "csv"
	SourceXLSX     = "xlsx"
	SourcePostgres = "postgres"
)

// SlogLevel parses log.level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log.level %q: %w", c.Level, err)
	}
	return level, nil
}

// ShutdownTimeoutDuration parses server.shutdown_timeout.
func (c ServerConfig) ShutdownTimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid server.shutdown_timeout %q: %w", c.ShutdownTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("server.shutdown_timeout must be > 0")
	}
	return d, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}
	if _, err := c.Server.ShutdownTimeoutDuration(); err != nil {
		return err
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	switch c.Source.Type {
	case SourceCSV, SourceXLSX:
		if strings.TrimSpace(c.Source.Path) == "" {
			return fmt.Errorf("source.path is required for source.type %q", c.Source.Type)
		}
		if _, err := os.Stat(c.Source.Path); err != nil {
			return fmt.Errorf("source.path %q is not accessible: %w", c.Source.Path, err)
		}
	case SourcePostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported source.type %q (must be csv, xlsx or postgres)", c.Source.Type)
	}

	if err := c.Columns.Validate(); err != nil {
		return err
	}

	if c.Dashboard.DefaultCategories < 0 {
		return fmt.Errorf("dashboard.default_categories must be >= 0")
	}
	if c.Dashboard.DefaultWarehouses < 0 {
		return fmt.Errorf("dashboard.default_warehouses must be >= 0")
	}
	if c.Dashboard.SummaryLimit <= 0 {
		return fmt.Errorf("dashboard.summary_limit must be > 0")
	}
	if c.Dashboard.LabelMaxLen < 0 {
		return fmt.Errorf("dashboard.label_max_len must be >= 0")
	}
	if c.Dashboard.ViewCacheSize <= 0 {
		return fmt.Errorf("dashboard.view_cache_size must be > 0")
	}
	if c.Dashboard.MaxSessions <= 0 {
		return fmt.Errorf("dashboard.max_sessions must be > 0")
	}
	if c.Dashboard.PalettePath != "" {
		if _, err := os.Stat(c.Dashboard.PalettePath); err != nil {
			return fmt.Errorf("dashboard.palette_path %q is not accessible: %w", c.Dashboard.PalettePath, err)
		}
	}

	return nil
}

// Validate checks the settings needed to open the database.
func (c DatabaseConfig) Validate() error {
	if strings.TrimSpace(c.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}
	return nil
}

// Load parses config from defaults, file and env, then validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	cols := sales.DefaultColumns()
	defaults := map[string]interface{}{
		"server.port":                  8080,
		"server.host":                  "0.0.0.0",
		"server.max_body_size_mb":      1,
		"server.mode":                  "release",
		"server.shutdown_timeout":      "10s",
		"log.level":                    "info",
		"source.type":                  SourceCSV,
		"source.path":                  "./data/Warehouse_and_Retail_Sales.csv",
		"source.sheet":                 "",
		"database.dsn":                 "",
		"database.max_open_conns":      10,
		"database.max_idle_conns":      5,
		"database.auto_migrate":        true,
		"columns.year":                 cols.Year,
		"columns.month":                cols.Month,
		"columns.category":             cols.Category,
		"columns.warehouse":            cols.Warehouse,
		"columns.retail_sales":         cols.RetailSales,
		"columns.warehouse_sales":      cols.WarehouseSales,
		"columns.retail_transfers":     cols.RetailTransfers,
		"dashboard.default_categories": 3,
		"dashboard.default_warehouses": 5,
		"dashboard.summary_limit":      10,
		"dashboard.label_max_len":      25,
		"dashboard.palette_path":       "",
		"dashboard.view_cache_size":    512,
		"dashboard.max_sessions":       1024,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("SALESDASH_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "SALESDASH_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
