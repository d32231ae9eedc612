package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingBotToken = errors.New("slack bot token is required (set SLACK_BOT_TOKEN)")

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Slack  SlackConfig  `mapstructure:"slack"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// SlackConfig describes the upstream Web API client. A zero Timeout means the
// relay imposes no deadline of its own.
type SlackConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	BreakerEnabled bool          `mapstructure:"breaker_enabled"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
	DevMode  bool   `mapstructure:"dev_mode"`
}

func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Set defaults
	v.SetDefault("server.port", "5000")
	v.SetDefault("slack.bot_token", "")
	v.SetDefault("slack.base_url", "https://slack.com/api/")
	v.SetDefault("slack.timeout", "0s")
	v.SetDefault("slack.breaker_enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("log.dev_mode", false)

	// Read from environment, slack.bot_token -> SLACK_BOT_TOKEN
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", "PORT", "SERVER_PORT"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found, use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Slack.BotToken) == "" {
		return ErrMissingBotToken
	}
	if !strings.HasSuffix(c.Slack.BaseURL, "/") {
		c.Slack.BaseURL += "/"
	}
	return nil
}
