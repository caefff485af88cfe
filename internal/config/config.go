package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// Environments, which pick the log format and level.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer  `yaml:"http_server"`
	CORS        CORS    `yaml:"cors"`
	Storage     Storage `yaml:"storage"`
	CatalogPath string  `yaml:"catalog_path" env:"CATALOG_PATH"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

type Storage struct {
	Driver     string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"policies.db"`
	MySQLDSN   string `yaml:"mysql_dsn" env:"MYSQL_DSN"`
	SlotKey    string `yaml:"slot_key" env:"SLOT_KEY" env-default:"savedPolicies"`
}

// Path returns the config file path: the flag value if set, else CONFIG_PATH.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("CONFIG_PATH")
}

// Load reads the YAML file at path with env overrides. Without a file only
// the environment and defaults are used.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			path = ""
		}
	}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad is Load that exits on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Validate checks the storage settings.
func (c *Config) Validate() error {
	if !slices.Contains([]string{DriverSQLite, DriverMySQL, DriverMemory}, c.Storage.Driver) {
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverMySQL && c.Storage.MySQLDSN == "" {
		return errors.New("storage.mysql_dsn is required for the mysql driver")
	}
	if !slices.Contains([]string{EnvLocal, EnvDev, EnvProd}, c.Env) {
		return fmt.Errorf("unknown env %q", c.Env)
	}
	return nil
}
