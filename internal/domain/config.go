package domain

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents application configuration
type Config struct {
	Bot struct {
		Token      string `yaml:"token"`
		OperatorID int64  `yaml:"operator_id"`
		ChannelID  int64  `yaml:"channel_id"`
		ChannelURL string `yaml:"channel_url"`
	} `yaml:"bot"`
	Limits struct {
		MaxDurationSec      int   `yaml:"max_duration"`
		MaxFileSizeMB       int64 `yaml:"max_file_size"`
		ProbeTimeoutSec     int   `yaml:"probe_timeout"`
		TranscodeTimeoutSec int   `yaml:"transcode_timeout"`
	} `yaml:"limits"`
	Subscription struct {
		CacheTTLHours int `yaml:"cache_ttl_hours"`
	} `yaml:"subscription"`
	Health struct {
		Port int `yaml:"port"`
	} `yaml:"health"`
	Storage struct {
		TempDir string `yaml:"temp_dir"`
	} `yaml:"storage"`
	Logging struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"logging"`
}

// LoadConfig reads configuration from a YAML file and applies environment
// overrides on top. All values are fixed at process start, no hot reload.
func LoadConfig(filename string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		// No config file: environment must provide everything required.
	} else if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TG_TOKEN"); v != "" {
		c.Bot.Token = v
	}
	if v, ok := envInt64("OPERATOR_ID"); ok {
		c.Bot.OperatorID = v
	}
	if v, ok := envInt64("CHANNEL_ID"); ok {
		c.Bot.ChannelID = v
	}
	if v := os.Getenv("CHANNEL_URL"); v != "" {
		c.Bot.ChannelURL = v
	}
	if v, ok := envInt64("LIVENESS_PORT"); ok {
		c.Health.Port = int(v)
	}
	if v := os.Getenv("TEMP_DIR"); v != "" {
		c.Storage.TempDir = v
	}
}

func (c *Config) applyDefaults() {
	if c.Limits.MaxDurationSec == 0 {
		c.Limits.MaxDurationSec = 60
	}
	if c.Limits.MaxFileSizeMB == 0 {
		c.Limits.MaxFileSizeMB = 20
	}
	if c.Limits.ProbeTimeoutSec == 0 {
		c.Limits.ProbeTimeoutSec = 30
	}
	if c.Limits.TranscodeTimeoutSec == 0 {
		c.Limits.TranscodeTimeoutSec = 300
	}
	if c.Subscription.CacheTTLHours == 0 {
		c.Subscription.CacheTTLHours = 6
	}
	if c.Health.Port == 0 {
		c.Health.Port = 8080
	}
	if c.Storage.TempDir == "" {
		c.Storage.TempDir = "temp_videos"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("bot token is not set (config bot.token or TG_TOKEN)")
	}
	if c.Bot.ChannelID == 0 {
		return fmt.Errorf("channel id is not set (config bot.channel_id or CHANNEL_ID)")
	}
	return nil
}

// MaxFileSizeBytes returns the source-size limit in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return c.Limits.MaxFileSizeMB * 1024 * 1024
}

// MaxDuration returns the source-duration limit.
func (c *Config) MaxDuration() time.Duration {
	return time.Duration(c.Limits.MaxDurationSec) * time.Second
}

// CacheTTL returns the subscription cache freshness window.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Subscription.CacheTTLHours) * time.Hour
}

// ProbeTimeout bounds the ffprobe duration inspection.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Limits.ProbeTimeoutSec) * time.Second
}

// TranscodeTimeout bounds a single ffmpeg conversion.
func (c *Config) TranscodeTimeout() time.Duration {
	return time.Duration(c.Limits.TranscodeTimeoutSec) * time.Second
}

func envInt64(key string) (int64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
