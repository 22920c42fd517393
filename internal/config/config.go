// This file defines the configuration structure for the application.
package config

import (
	// use Viper for loading the config.yml file.
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultUserAgent is sent with every request. The listing site rejects
// the default Go client signature.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Provider  string `mapstructure:"provider"`
	BaseURL   string `mapstructure:"base_url"`
	OutputDir string `mapstructure:"output_dir"`
	Results   int    `mapstructure:"results"`
	LogLevel  string `mapstructure:"log_level"`
	Verbose   bool   `mapstructure:"verbose"`
	Fetch     struct {
		UserAgent         string        `mapstructure:"user_agent"`
		Timeout           time.Duration `mapstructure:"timeout"`
		MaxAttempts       int           `mapstructure:"max_attempts"`
		InitialBackoff    time.Duration `mapstructure:"initial_backoff"`
		MaxBackoff        time.Duration `mapstructure:"max_backoff"`
		RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	} `mapstructure:"fetch"`
	Search struct {
		MaxPages int `mapstructure:"max_pages"`
	} `mapstructure:"search"`
	Download struct {
		Workers int `mapstructure:"workers"`
		Locker  struct {
			Command string   `mapstructure:"command"`
			Args    []string `mapstructure:"args"`
		} `mapstructure:"locker"`
	} `mapstructure:"download"`
}

// Load reads configuration from config.yml in the current directory (or
// from configFile when it is not empty) and unmarshals it into a Config.
// Flags bound to the global viper instance take precedence over the file.
func Load(configFile string) (*Config, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config") // name of config file (without extension)
		viper.SetConfigType("yml")    // or "yaml"
		viper.AddConfigPath(".")      // looking for config in the current directory
	}

	// --- Environment Variable Overrides ---
	// e.g., COMICDL_DOWNLOAD_WORKERS will override the `download.workers` key.
	viper.SetEnvPrefix("COMICDL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("provider", "getcomics")
	viper.SetDefault("base_url", "https://getcomics.org")
	viper.SetDefault("output_dir", "./Downloaded Comics")
	viper.SetDefault("results", 15)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("verbose", false)
	viper.SetDefault("fetch.user_agent", DefaultUserAgent)
	viper.SetDefault("fetch.timeout", 30*time.Second)
	viper.SetDefault("fetch.max_attempts", 3)
	viper.SetDefault("fetch.initial_backoff", 500*time.Millisecond)
	viper.SetDefault("fetch.max_backoff", 8*time.Second)
	viper.SetDefault("fetch.requests_per_second", 2.0)
	viper.SetDefault("search.max_pages", 20)
	viper.SetDefault("download.workers", 3)
	viper.SetDefault("download.locker.command", "mediafire-dl")
	viper.SetDefault("download.locker.args", []string{"-o", "{dest}", "{url}"})

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.normalize()

	return &config, nil
}

// normalize clamps values that would make the pipeline misbehave.
func (c *Config) normalize() {
	// Negative counts are left for query validation to reject.
	if c.Results == 0 {
		c.Results = 15
	}
	if c.Fetch.MaxAttempts < 1 {
		c.Fetch.MaxAttempts = 1
	}
	if c.Search.MaxPages < 1 {
		c.Search.MaxPages = 1
	}
	switch {
	case c.Download.Workers < 1:
		c.Download.Workers = 1
	case c.Download.Workers > 4:
		c.Download.Workers = 4
	}
	if c.Verbose {
		c.LogLevel = "debug"
	}
}
