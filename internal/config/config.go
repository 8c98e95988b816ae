// Package config loads nlquery settings from, in increasing precedence:
// built-in defaults, nlquery.yaml in the XDG config dir or the working
// directory, NLQUERY_* environment variables and command-line flags.
//
// Only non-secret settings live here. Passwords and tokens are never written
// to disk.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"nlquery/cli/internal/xdg"
)

// FileName is the config file name without extension.
const FileName = "nlquery"

// Config holds the effective CLI and web UI settings.
type Config struct {
	BaseURL        string        `mapstructure:"base_url"`
	Listen         string        `mapstructure:"listen"`
	LogLevel       string        `mapstructure:"log_level"`
	Language       string        `mapstructure:"language"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	DefaultTab     string        `mapstructure:"default_tab"`
	Examples       []string      `mapstructure:"examples"`
}

// fileConfig is the on-disk shape; durations are kept human-readable.
type fileConfig struct {
	BaseURL        string   `yaml:"base_url"`
	Listen         string   `yaml:"listen"`
	LogLevel       string   `yaml:"log_level"`
	Language       string   `yaml:"language"`
	RequestTimeout string   `yaml:"request_timeout"`
	SessionTTL     string   `yaml:"session_ttl"`
	DefaultTab     string   `yaml:"default_tab"`
	Examples       []string `yaml:"examples"`
}

// DefaultExamples are the preset questions offered by the query panel.
var DefaultExamples = []string{
	"What is the most expensive product in the store?",
	"What is the cheapest item in the Clothing category?",
	"How many products are in the Electronics category?",
	"What is the average price of all products?",
	"Show me all customers",
}

// Defaults returns the built-in settings keyed by config key.
func Defaults() map[string]any {
	return map[string]any{
		"base_url":        "http://localhost:5000",
		"listen":          "127.0.0.1:8080",
		"log_level":       "info",
		"language":        "en",
		"request_timeout": "10s",
		"session_ttl":     "12h",
		"default_tab":     "results",
		"examples":        DefaultExamples,
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"base-url":    "base_url",
	"listen":      "listen",
	"log-level":   "log_level",
	"lang":        "language",
	"timeout":     "request_timeout",
	"session-ttl": "session_ttl",
	"tab":         "default_tab",
}

// Path returns the path of the user config file.
func Path() (string, error) {
	dir, err := xdg.ConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, xdg.AppName, FileName+".yaml"), nil
}

// Load reads the configuration. explicitFile, when non-empty, must exist.
// flags may be nil; only flags that are defined and changed override the
// other sources.
func Load(flags *pflag.FlagSet, explicitFile string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
	}
	if p, err := Path(); err == nil {
		v.AddConfigPath(filepath.Dir(p))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitFile != "" || !errors.As(err, &notFound) {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("nlquery")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return c, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return c, errors.New("base_url must not be empty")
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 10 * time.Second
	}
	return c, nil
}

// Marshal renders c in the on-disk YAML format.
func Marshal(c Config) ([]byte, error) {
	fc := fileConfig{
		BaseURL:        c.BaseURL,
		Listen:         c.Listen,
		LogLevel:       c.LogLevel,
		Language:       c.Language,
		RequestTimeout: c.RequestTimeout.String(),
		SessionTTL:     c.SessionTTL.String(),
		DefaultTab:     c.DefaultTab,
		Examples:       c.Examples,
	}
	return yaml.Marshal(&fc)
}

// Write stores c at path with 0600 permissions, creating the directory.
func Write(c Config, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
