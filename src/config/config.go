// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/H0llyW00dzZ/x509-store-context/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/x509-store-context/src/internal/native"
)

// EnvFile names the environment variable consulted when no path is given.
const EnvFile = "X509_STORE_CONTEXT_CONFIG"

const defaultTimeout = 30

// Formats lists the accepted output formats.
var Formats = []string{"text", "tree", "table", "json", "pem", "der"}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid value")

// format represents supported configuration file formats.
type format int

const (
	formatJSON format = iota
	formatYAML
	formatTOML
)

// Config holds the verification settings.
type Config struct {
	Trust struct {
		// CAFile is a PEM, DER or PKCS7 bundle of trust anchors.
		CAFile string `json:"caFile" yaml:"caFile" toml:"caFile"`
		// CADir holds one or more trust anchor files.
		CADir string `json:"caDir" yaml:"caDir" toml:"caDir"`
		// System adds the platform roots.
		System bool `json:"system" yaml:"system" toml:"system"`
	} `json:"trust" yaml:"trust" toml:"trust"`

	Verify struct {
		Purpose  string `json:"purpose" yaml:"purpose" toml:"purpose"`
		Hostname string `json:"hostname" yaml:"hostname" toml:"hostname"`
	} `json:"verify" yaml:"verify" toml:"verify"`

	Network struct {
		TimeoutSeconds     int  `json:"timeoutSeconds" yaml:"timeoutSeconds" toml:"timeoutSeconds"`
		FetchIntermediates bool `json:"fetchIntermediates" yaml:"fetchIntermediates" toml:"fetchIntermediates"`
	} `json:"network" yaml:"network" toml:"network"`

	Output struct {
		Format string `json:"format" yaml:"format" toml:"format"`
	} `json:"output" yaml:"output" toml:"output"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	c := &Config{}
	c.Network.TimeoutSeconds = defaultTimeout
	c.Output.Format = "text"
	return c
}

// Timeout returns the network timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Network.TimeoutSeconds) * time.Second
}

// Purpose returns the parsed verify purpose.
func (c *Config) Purpose() (native.Purpose, error) {
	p, err := native.ParsePurpose(c.Verify.Purpose)
	if err != nil {
		return native.PurposeDefault, fmt.Errorf("%w: purpose %q", ErrInvalidConfig, c.Verify.Purpose)
	}
	return p, nil
}

// Validate checks enumerated values and fixes non-positive timeouts.
func (c *Config) Validate() error {
	if c.Network.TimeoutSeconds <= 0 {
		c.Network.TimeoutSeconds = defaultTimeout
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("%w: format %q (want one of %s)", ErrInvalidConfig, c.Output.Format, strings.Join(Formats, ", "))
	}
	_, err := c.Purpose()
	return err
}

// Load reads path over the defaults. An empty path falls back to
// [EnvFile]; when that is unset too, the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvFile)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := gc.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := unmarshal(data, cfg, detectFormat(path)); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// detectFormat picks the decoder from the file extension. Unknown
// extensions are read as JSON.
func detectFormat(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".toml":
		return formatTOML
	default:
		return formatJSON
	}
}

func unmarshal(data []byte, cfg *Config, f format) error {
	switch f {
	case formatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse TOML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}
