package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML file.
const ConfigFileEnv = "DASHBOARD_CONFIG"

type Config struct {
	GTFSStatic GTFSStaticConfig `yaml:"gtfs_static"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GTFSStaticConfig locates the static feed archive
type GTFSStaticConfig struct {
	ZipPath string `yaml:"zip_path" validate:"required"`
}

type OutputConfig struct {
	Dir     string `yaml:"dir" validate:"required"`
	GeoJSON bool   `yaml:"geojson"`
}

type LoggingConfig struct {
	Level    string `yaml:"level" validate:"oneof=debug info warn error"`
	FilePath string `yaml:"file_path"`
}

func Default() *Config {
	return &Config{
		GTFSStatic: GTFSStaticConfig{
			ZipPath: "muni_gtfs-current.zip",
		},
		Output: OutputConfig{
			Dir: "data",
		},
		Logging: LoggingConfig{
			Level:    "info",
			FilePath: "dashboard-data.log",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// DASHBOARD_CONFIG, and environment variables, in increasing precedence.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.GTFSStatic.ZipPath = getEnv("GTFS_ZIP_PATH", cfg.GTFSStatic.ZipPath)
	cfg.Output.Dir = getEnv("OUTPUT_DIR", cfg.Output.Dir)
	cfg.Output.GeoJSON = getBoolEnv("EXPORT_GEOJSON", cfg.Output.GeoJSON)
	cfg.Logging.Level = strings.ToLower(getEnv("LOG_LEVEL", cfg.Logging.Level))
	if value, ok := os.LookupEnv("LOG_FILE"); ok {
		cfg.Logging.FilePath = value
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks required fields and enumerations
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
