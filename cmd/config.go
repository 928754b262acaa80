// Config loading for the worldometer CLI.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/worldometer/core/fetch"
	"github.com/gaurav-prasanna/worldometer/core/topic"
)

const (
	configFileName = "worldometer"
	configFileType = "yaml"
	envPrefix      = "WORLDOMETER"

	cfgKeyBaseURL          = "base_url"
	cfgKeyTimeout          = "timeout"
	cfgKeyUserAgent        = "user_agent"
	cfgKeyBypassCloudflare = "bypass_cloudflare"
	cfgKeyChromePath       = "chrome_path"
	cfgKeyOutputDir        = "output_dir"
	cfgKeyArchive          = "archive"
	cfgKeyLogLevel         = "log_level"
)

// Config validation errors.
var (
	ErrBaseURLInvalid  = errors.New("base_url must be an absolute http or https URL")
	ErrTimeoutInvalid  = errors.New("timeout must be positive")
	ErrLogLevelUnknown = errors.New("unknown log level")
)

// Config is the effective CLI configuration.
type Config struct {
	BaseURL          string        `json:"base_url"`
	Timeout          time.Duration `json:"timeout"`
	UserAgent        string        `json:"user_agent"`
	BypassCloudflare bool          `json:"bypass_cloudflare"`
	ChromePath       string        `json:"chrome_path"`
	OutputDir        string        `json:"output_dir"`
	Archive          string        `json:"archive"`
	LogLevel         string        `json:"log_level"`
}

// Validate checks that the Config is usable. It returns one of the
// sentinel errors above, wrapped with the offending value.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrBaseURLInvalid, c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrTimeoutInvalid, c.Timeout)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrLogLevelUnknown, c.LogLevel)
	}
	return lvl, nil
}

// newViper returns a Viper with the defaults and environment overrides set.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(cfgKeyBaseURL, topic.DefaultBaseURL)
	v.SetDefault(cfgKeyTimeout, fetch.DefaultTimeout)
	v.SetDefault(cfgKeyUserAgent, fetch.DefaultUserAgent)
	v.SetDefault(cfgKeyBypassCloudflare, false)
	v.SetDefault(cfgKeyChromePath, "")
	v.SetDefault(cfgKeyOutputDir, "")
	v.SetDefault(cfgKeyArchive, "")
	v.SetDefault(cfgKeyLogLevel, "info")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// loadConfig reads worldometer.yaml from configDir. A missing file is not an
// error. Values resolve as flag > environment > file > default.
func loadConfig(v *viper.Viper, configDir string) (Config, error) {
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		BaseURL:          v.GetString(cfgKeyBaseURL),
		Timeout:          v.GetDuration(cfgKeyTimeout),
		UserAgent:        v.GetString(cfgKeyUserAgent),
		BypassCloudflare: v.GetBool(cfgKeyBypassCloudflare),
		ChromePath:       v.GetString(cfgKeyChromePath),
		OutputDir:        v.GetString(cfgKeyOutputDir),
		Archive:          v.GetString(cfgKeyArchive),
		LogLevel:         v.GetString(cfgKeyLogLevel),
	}, nil
}
