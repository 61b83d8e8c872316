package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Dataset source kinds
const (
	SourceFile     = "file"
	SourceS3       = "s3"
	SourceDatabase = "database"
)

// Config represents the application configuration
type Config struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	Dataset struct {
		Source string `yaml:"source"`
		Path   string `yaml:"path"`
		S3     struct {
			Region string `yaml:"region"`
			Bucket string `yaml:"bucket"`
			Key    string `yaml:"key"`
		} `yaml:"s3"`
		Database struct {
			Driver string `yaml:"driver"`
			DSN    string `yaml:"dsn"`
		} `yaml:"database"`
	} `yaml:"dataset"`

	MetricsConfig struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	cfg := &Config{
		Port:     8080,
		LogLevel: "info",
	}
	cfg.Dataset.Source = SourceFile
	cfg.Dataset.Path = "fine-dining-dataset.json"
	cfg.Dataset.Database.Driver = "sqlite3"
	cfg.Dataset.Database.DSN = "huddle.db"
	cfg.MetricsConfig.Enabled = true
	cfg.MetricsConfig.Port = 9090
	cfg.MetricsConfig.Path = "/metrics"
	return cfg
}

// Load reads configuration from path, then applies .env and HUDDLE_* environment overrides.
// A missing config file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("Config file %s not found, using defaults", path)
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the dataset source settings
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceFile:
		if c.Dataset.Path == "" {
			return errors.New("dataset.path is required for the file source")
		}
	case SourceS3:
		if c.Dataset.S3.Bucket == "" || c.Dataset.S3.Key == "" {
			return errors.New("dataset.s3.bucket and dataset.s3.key are required for the s3 source")
		}
	case SourceDatabase:
		if c.Dataset.Database.Driver == "" || c.Dataset.Database.DSN == "" {
			return errors.New("dataset.database.driver and dataset.database.dsn are required for the database source")
		}
	default:
		return fmt.Errorf("unknown dataset source %q", c.Dataset.Source)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.LogLevel, "HUDDLE_LOG_LEVEL")
	setString(&cfg.Dataset.Source, "HUDDLE_DATASET_SOURCE")
	setString(&cfg.Dataset.Path, "HUDDLE_DATASET_PATH")
	setString(&cfg.Dataset.S3.Region, "HUDDLE_S3_REGION")
	setString(&cfg.Dataset.S3.Bucket, "HUDDLE_S3_BUCKET")
	setString(&cfg.Dataset.S3.Key, "HUDDLE_S3_KEY")
	setString(&cfg.Dataset.Database.Driver, "HUDDLE_DB_DRIVER")
	setString(&cfg.Dataset.Database.DSN, "HUDDLE_DB_DSN")

	if err := setInt(&cfg.Port, "HUDDLE_PORT"); err != nil {
		return err
	}
	if err := setInt(&cfg.MetricsConfig.Port, "HUDDLE_METRICS_PORT"); err != nil {
		return err
	}
	if v := os.Getenv("HUDDLE_METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HUDDLE_METRICS_ENABLED: %w", err)
		}
		cfg.MetricsConfig.Enabled = enabled
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
