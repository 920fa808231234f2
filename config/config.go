// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/yuehcw/padres-project/stats"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	// DBDriver selects PostgreSQL (default) or SQLite.
	DBDriver string

	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// SQLitePath is a file path or ":memory:".
	SQLitePath string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// Import
	Team           string
	DataFile       string
	PlayerInfoFile string

	// Velocity curves
	Distribution stats.DistributionConfig

	// MySQL – used only by cmd/migrate.
	MySQLDSN string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win. Invalid settings
// are fatal.
func Load() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Parse is Load without the exit: validation problems are returned.
func Parse() (*Config, error) {
	v := newViper()

	// Defaults
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "padres_project")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "padres.db")
	v.SetDefault("PORT", ":5000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("TEAM", "San Diego Padres")
	v.SetDefault("DATA_FILE", "data/padres_project_data.csv")
	v.SetDefault("PLAYER_INFO_FILE", "data/player_info.csv")

	dist := stats.DefaultDistributionConfig()
	v.SetDefault("KDE_DEFAULT_SCALE", dist.DefaultScale)
	v.SetDefault("KDE_DAMPING", dist.Damping)

	cfg := &Config{
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		DBUser:         v.GetString("DB_USER"),
		DBPass:         v.GetString("DB_PASS"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		Debug:          v.GetBool("DEBUG"),
		Port:           v.GetString("PORT"),
		TLSDomains:     splitTrimmed(v.GetString("TLS_DOMAINS")),
		Team:           v.GetString("TEAM"),
		DataFile:       v.GetString("DATA_FILE"),
		PlayerInfoFile: v.GetString("PLAYER_INFO_FILE"),
		MySQLDSN:       v.GetString("MYSQL_DSN"),
	}

	dist.DefaultScale = v.GetFloat64("KDE_DEFAULT_SCALE")
	dist.Damping = v.GetFloat64("KDE_DAMPING")
	if raw := v.GetString("KDE_SCALE_FACTORS"); raw != "" {
		overrides, err := parseScaleFactors(raw)
		if err != nil {
			return nil, err
		}
		for pt, s := range overrides {
			dist.ScaleFactors[pt] = s
		}
	}
	cfg.Distribution = dist

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" && c.DBPass == "" {
			return errors.New("config: DATABASE_URL or DB_PASS must be set")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("config: SQLITE_PATH must be set for the sqlite driver")
		}
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.DBDriver)
	}
	if c.Team == "" {
		return errors.New("config: TEAM must not be empty")
	}
	if c.Distribution.Damping <= 0 {
		return fmt.Errorf("config: KDE_DAMPING must be positive, got %v", c.Distribution.Damping)
	}
	return nil
}

// parseScaleFactors reads "4S=0.297,SL=0.273".
func parseScaleFactors(raw string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, pair := range splitTrimmed(raw) {
		code, val, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("config: KDE_SCALE_FACTORS entry %q is not CODE=VALUE", pair)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("config: KDE_SCALE_FACTORS entry %q needs a positive number", pair)
		}
		out[strings.ToUpper(strings.TrimSpace(code))] = f
	}
	return out, nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
