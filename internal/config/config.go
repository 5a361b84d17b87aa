package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-addsum/internal/digest"
	"github.com/deploymenttheory/go-addsum/internal/errors"
	"github.com/deploymenttheory/go-addsum/internal/input"
	"github.com/deploymenttheory/go-addsum/internal/report"
)

const (
	// AppName is the application name used for config files and directories
	AppName = "addsum"

	// EnvPrefix is the prefix for environment variables
	EnvPrefix = "ADDSUM"
)

// AppConfig holds the application configuration
type AppConfig struct {
	// Core settings
	Debug     bool   `mapstructure:"debug"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`

	// Input settings
	Input struct {
		MaxBytes   int  `mapstructure:"max_bytes"`  // 0 disables the cap
		Decompress bool `mapstructure:"decompress"` // gzip, bzip2, xz, zstd
	} `mapstructure:"input"`

	// Output settings
	Output struct {
		LineLength int    `mapstructure:"line_length"`
		Format     string `mapstructure:"format"` // text, json, yaml, plist
	} `mapstructure:"output"`

	// Digest names an optional companion digest algorithm
	Digest string `mapstructure:"digest"`
}

// Global variables
var (
	// Global configuration instance
	Instance AppConfig

	// Status indicators
	ConfigLoaded bool
	ConfigFile   string

	initOnce sync.Once
	initErr  error
)

// Initialize loads the configuration into Instance. Only the first call has an effect.
func Initialize(cfgFile string) error {
	initOnce.Do(func() {
		cfg, used, err := Load(cfgFile)
		if err != nil {
			initErr = err
			return
		}

		Instance = *cfg
		ConfigFile = used
		ConfigLoaded = used != ""
	})

	return initErr
}

// Load reads defaults, the config file and the environment into a new
// AppConfig. It also returns the config file used, if any.
func Load(cfgFile string) (*AppConfig, string, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		addSearchPaths(v)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	used := ""
	if err := v.ReadInConfig(); err != nil {
		// A missing config file in the search paths is fine, defaults and env still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, "", fmt.Errorf("%w: %v", errors.ErrConfigParseError, err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("%w: %v", errors.ErrConfigParseError, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, used, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *AppConfig {
	v := viper.New()
	setDefaults(v)

	var cfg AppConfig
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_format", "human")
	v.SetDefault("log_file", "")

	v.SetDefault("input.max_bytes", input.DefaultMaxBytes)
	v.SetDefault("input.decompress", false)

	v.SetDefault("output.line_length", report.DefaultLineLength)
	v.SetDefault("output.format", string(report.FormatText))

	v.SetDefault("digest", "")
}

// addSearchPaths adds config search paths
func addSearchPaths(v *viper.Viper) {
	// Always check current directory first
	v.AddConfigPath(".")

	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, AppName))
	}

	v.AddConfigPath(filepath.Join("/etc", AppName))
}

// Validate checks value ranges and enum settings.
func (c *AppConfig) Validate() error {
	if c.LogFormat != "human" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log_format must be json or human, got %q", errors.ErrConfigInvalid, c.LogFormat)
	}

	if c.Input.MaxBytes < 0 {
		return fmt.Errorf("%w: input.max_bytes must not be negative", errors.ErrConfigInvalid)
	}

	if c.Output.LineLength <= 0 {
		return fmt.Errorf("%w: output.line_length must be greater than 0", errors.ErrConfigInvalid)
	}

	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: output.format: %v", errors.ErrConfigInvalid, err)
	}

	if _, err := digest.ParseAlgorithm(c.Digest); err != nil {
		return fmt.Errorf("%w: digest: %v", errors.ErrConfigInvalid, err)
	}

	return nil
}

// InputOptions returns the reader options for this configuration.
func (c *AppConfig) InputOptions() input.Options {
	return input.Options{
		MaxBytes:   c.Input.MaxBytes,
		Decompress: c.Input.Decompress,
	}
}
