package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	GitHubBaseURL      string        `mapstructure:"github_base_url"`
	GitHubToken        string        `mapstructure:"github_token" json:"-"`
	GitHubAccept       string        `mapstructure:"github_accept"`
	UserAgent          string        `mapstructure:"user_agent"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	PublishersFile string `mapstructure:"publishers_file"`
	SyncPerPage    int    `mapstructure:"sync_per_page"`
	SyncMaxPages   int    `mapstructure:"sync_max_pages"`

	ReachabilityCheck       bool          `mapstructure:"reachability_check"`
	ReachabilityPollSeconds int64         `mapstructure:"reachability_poll_seconds"`
	ReachabilityPoll        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "ghusers")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("github_base_url", "https://api.github.com")
	v.SetDefault("github_token", "")
	v.SetDefault("github_accept", "application/vnd.github+json")
	v.SetDefault("user_agent", "ghusers")
	v.SetDefault("http_timeout_seconds", 15)
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("sync_per_page", 50)
	v.SetDefault("sync_max_pages", 10)
	v.SetDefault("reachability_check", true)
	v.SetDefault("reachability_poll_seconds", 5)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) normalize() error {
	cfg.GitHubBaseURL = strings.TrimRight(strings.TrimSpace(cfg.GitHubBaseURL), "/")
	if cfg.GitHubBaseURL == "" {
		return fmt.Errorf("github_base_url must not be empty")
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.SyncPerPage <= 0 || cfg.SyncPerPage > 100 {
		return fmt.Errorf("invalid sync_per_page (must be between 1 and 100)")
	}
	if cfg.SyncMaxPages <= 0 {
		return fmt.Errorf("invalid sync_max_pages (must be positive)")
	}

	if cfg.ReachabilityPollSeconds <= 0 {
		return fmt.Errorf("invalid reachability_poll_seconds (must be positive seconds)")
	}
	cfg.ReachabilityPoll = time.Duration(cfg.ReachabilityPollSeconds) * time.Second
	return nil
}

// DefaultHeaders are sent with every GitHub API request.
func (cfg *Config) DefaultHeaders() map[string]string {
	headers := map[string]string{}
	if cfg.GitHubAccept != "" {
		headers["Accept"] = cfg.GitHubAccept
	}
	if cfg.UserAgent != "" {
		headers["User-Agent"] = cfg.UserAgent
	}
	return headers
}
