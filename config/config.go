// Package config loads the worldclockset settings from an optional YAML file.
package config

import (
	"net/url"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"worldclockset/errlog"
	"worldclockset/timeutils"
)

// Config holds every setting a sync run needs.
type Config struct {
	URL            string        `yaml:"url"`
	LogFile        string        `yaml:"log_file"`
	Timeout        time.Duration `yaml:"timeout"`
	DryRun         bool          `yaml:"dry_run"`
	UseSystemTools bool          `yaml:"use_system_tools"`
	Sudo           bool          `yaml:"sudo"`
	NTPServer      string        `yaml:"ntp_server"`
	LogLevel       string        `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		URL:      timeutils.DefaultURL,
		LogFile:  errlog.DefaultPath,
		LogLevel: "info",
	}
}

// Load reads path on top of the defaults. An empty path yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config file %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config file %s", path)
	}

	cfg.fillDefaults()
	return cfg, cfg.Validate()
}

// fillDefaults restores defaults for keys the file set to empty values.
func (c *Config) fillDefaults() {
	def := Default()
	if c.URL == "" {
		c.URL = def.URL
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil {
		return errors.Wrapf(err, "invalid url %q", c.URL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("url %q must be an absolute http(s) URL", c.URL)
	}
	if c.Timeout < 0 {
		return errors.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.LogFile == "" {
		return errors.New("log_file must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return level, errors.Wrapf(err, "invalid log_level %q", c.LogLevel)
	}
	return level, nil
}
