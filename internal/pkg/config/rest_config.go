package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the environment variable that overrides the config file location
const ConfigPathEnv = "CONFIG_PATH"

// DefaultMaxRandomBytes caps GET /random requests when max_random_bytes is unset
const DefaultMaxRandomBytes = 1024

// RestConfig holds the settings for the REST API binary
type RestConfig struct {
	Port           string         `yaml:"port" toml:"port" validate:"required,numeric"`
	Logger         LoggerSettings `yaml:"logger" toml:"logger"`
	AllowOrigins   []string       `yaml:"allow_origins" toml:"allow_origins"`
	MaxRandomBytes int            `yaml:"max_random_bytes" toml:"max_random_bytes" validate:"gte=0,lte=65536"`
}

// Validate checks the REST config and the nested logger settings
func (c *RestConfig) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}

	if err := c.Logger.Validate(); err != nil {
		return err
	}

	return nil
}

// InitializeRestConfig reads a YAML (.yaml/.yml) or TOML (.toml) file, applies defaults and validates the result
func InitializeRestConfig(path string) (*RestConfig, error) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &RestConfig{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse toml config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension: %q", ext)
	}

	if cfg.MaxRandomBytes == 0 {
		cfg.MaxRandomBytes = DefaultMaxRandomBytes
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"*"}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
