package config

import (
	"errors"
	"fmt"
	"mime"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. PHOTOARCHIVE_SERVER_PORT.
const EnvPrefix = "PHOTOARCHIVE"

// Config holds the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	Archive ArchiveConfig `yaml:"archive" json:"archive"`
	Pages   PagesConfig   `yaml:"pages" json:"pages"`
	Health  HealthConfig  `yaml:"health" json:"health"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ServerConfig holds the HTTP listener configuration
type ServerConfig struct {
	Host            string        `yaml:"host" json:"host" validate:"required"`
	Port            int           `yaml:"port" json:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" json:"shutdownTimeout" validate:"gt=0"`
}

// ArchiveConfig controls how directories are resolved and streamed
type ArchiveConfig struct {
	RootDir       string        `yaml:"rootDir" json:"rootDir" validate:"required"`
	Command       []string      `yaml:"command" json:"command" validate:"min=1,dive,required"`
	ChunkSize     int           `yaml:"chunkSize" json:"chunkSize" validate:"gt=0"`
	GracePeriod   time.Duration `yaml:"gracePeriod" json:"gracePeriod" validate:"gt=0"`
	ContentType   string        `yaml:"contentType" json:"contentType" validate:"required"`
	MaxConcurrent int64         `yaml:"maxConcurrent" json:"maxConcurrent" validate:"gte=0"`
}

// PagesConfig points at the static HTML pages served next to the archives
type PagesConfig struct {
	Index    string `yaml:"index" json:"index"`
	NotFound string `yaml:"notFound" json:"notFound"`
}

// HealthConfig holds the gRPC health endpoint configuration. An empty
// address disables it.
type HealthConfig struct {
	Address string `yaml:"address" json:"address" validate:"omitempty,hostname_port"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	File    string `yaml:"file" json:"file"`
	Level   string `yaml:"level" json:"level" validate:"oneof=DEBUG INFO WARN WARNING ERROR"`
	Format  string `yaml:"format" json:"format" validate:"oneof=text json"`
}

// DefaultConfig Default configuration values
var DefaultConfig = Config{
	Server: ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ShutdownTimeout: 10 * time.Second,
	},
	Archive: ArchiveConfig{
		RootDir:       "test_photos",
		Command:       []string{"zip", "-qr", "-", "."},
		ChunkSize:     512 * 1024, // 512KB
		GracePeriod:   1 * time.Second,
		ContentType:   "application/zip",
		MaxConcurrent: 0,
	},
	Pages: PagesConfig{
		Index:    "index.html",
		NotFound: "404.html",
	},
	Logging: LoggingConfig{
		Enabled: true,
		File:    "server.log",
		Level:   "INFO",
		Format:  "text",
	},
}

var validate = validator.New()

// Default returns a copy of DefaultConfig that is safe to modify.
func Default() *Config {
	cfg := DefaultConfig
	cfg.Archive.Command = append([]string(nil), DefaultConfig.Archive.Command...)
	return &cfg
}

// LoadConfig loads configuration from multiple sources in order of precedence:
// 1. Environment variables, including a .env file (highest precedence)
// 2. Configuration file (explicit path first, then the well-known locations)
// 3. Default values (lowest precedence)
//
// The returned string describes where the file configuration came from.
func LoadConfig(path string) (*Config, string, error) {
	config := Default()

	source, err := loadFromFile(config, path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config file: %w", err)
	}

	if e := loadFromEnv(config); e != nil {
		return nil, "", fmt.Errorf("failed to load environment variables: %w", e)
	}

	config.Normalize()

	if e := config.Validate(); e != nil {
		return nil, "", fmt.Errorf("configuration validation failed: %w", e)
	}

	return config, source, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(config *Config, explicit string) (string, error) {
	if explicit != "" {
		if err := readYAML(config, explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	configPaths := []string{
		os.Getenv(EnvPrefix + "_CONFIG_PATH"), // Custom path from environment
		"./config.yaml",                       // Current directory
		"./config/config.yaml",                // Config subdirectory
		"/etc/photoarchive/config.yaml",       // System-wide
	}

	for _, path := range configPaths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		if err := readYAML(config, path); err != nil {
			return "", err
		}
		return path, nil
	}

	return "built-in defaults (no config file found)", nil
}

func readYAML(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// loadFromEnv applies PHOTOARCHIVE_* variables. A .env file in the working
// directory is read first; variables already present in the environment win.
func loadFromEnv(config *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read .env file: %w", err)
	}

	return envconfig.Process(EnvPrefix, config)
}

// Normalize trims the archive command and canonicalizes logging settings.
// It runs before Validate whenever values were changed from outside.
func (c *Config) Normalize() {
	c.Archive.Command = lo.Compact(lo.Map(c.Archive.Command, func(part string, _ int) string {
		return strings.TrimSpace(part)
	}))
	c.Logging.Level = strings.ToUpper(c.Logging.Level)
	if c.Logging.Level == "WARNING" {
		c.Logging.Level = "WARN"
	}
	c.Logging.Format = strings.ToLower(c.Logging.Format)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if _, _, err := mime.ParseMediaType(c.Archive.ContentType); err != nil {
		return fmt.Errorf("invalid archive content type %q: %w", c.Archive.ContentType, err)
	}

	return nil
}

// GetServerAddress returns the host:port the HTTP server listens on.
func (c *Config) GetServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) SaveToFile(path string) error {
	data, err := c.ToYAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GenerateDefaultConfig creates a default configuration file
func GenerateDefaultConfig(path string) error {
	return Default().SaveToFile(path)
}
