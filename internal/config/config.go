// Package config loads tool configuration from a YAML file over
// built-in defaults. CLI flags override loaded values at the command
// layer.
package config

import (
	"os"

	yaml "go.yaml.in/yaml/v3"

	"github.com/Drasnov/mtga-reader/internal/errs"
)

// DefaultPath is consulted when no explicit config path is given.
const DefaultPath = "mtga-reader.yaml"

// Config holds every tunable the CLI and server read.
type Config struct {
	// Root is the game install root directory.
	Root string `yaml:"root"`

	// Language is the requested display language, e.g. "en-US".
	Language string `yaml:"language"`

	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
	Mirror MirrorConfig `yaml:"mirror"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	// Level is one of debug, info, warn, error, fatal.
	Level string `yaml:"level"`

	// Format is "json" or "console".
	Format string `yaml:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address, host:port.
	Addr string `yaml:"addr"`
}

// MirrorConfig configures the object-store mirror.
type MirrorConfig struct {
	// Endpoint is the host:port of the S3-compatible store.
	Endpoint string `yaml:"endpoint"`

	// AccessKey and SecretKey are the store credentials.
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`

	// Bucket holds the mirrored Downloads tree.
	Bucket string `yaml:"bucket"`

	// UseSSL controls TLS for the store connection.
	UseSSL bool `yaml:"use_ssl"`

	// Region is used by region-aware backends. Leave empty for MinIO.
	Region string `yaml:"region"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Language: "en-US",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Mirror: MirrorConfig{
			Bucket: "mtga",
		},
	}
}

// Load reads the YAML file at path over the defaults. An explicit path
// must exist; an empty path tries DefaultPath and falls back to pure
// defaults when it is absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "read config "+path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "parse config "+path, err)
	}
	return cfg, nil
}
