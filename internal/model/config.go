package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the full application configuration
type Config struct {
	Reddit RedditConfig `yaml:"reddit"`
	Limits LimitsConfig `yaml:"limits"`
	Cache  CacheConfig  `yaml:"cache"`
	Output OutputConfig `yaml:"output"`
	Rules  RulesConfig  `yaml:"rules"`
	LLM    LLMConfig    `yaml:"llm"`
}

// RedditConfig configures the API client. Credentials come from the
// environment and are never written to the config file.
type RedditConfig struct {
	ClientID     string `yaml:"-"`
	ClientSecret string `yaml:"-"`
	Username     string `yaml:"-"` // Optional, enables the password grant
	Password     string `yaml:"-"`

	UserAgent string        `yaml:"user_agent"`
	BaseURL   string        `yaml:"base_url"`
	AuthURL   string        `yaml:"auth_url"`
	Timeout   time.Duration `yaml:"timeout"`

	// MaxRetries bounds the sleep-and-retry attempts on 429 responses
	MaxRetries int `yaml:"max_retries"`

	// RequestDelay is the fixed sleep after each API page fetch
	RequestDelay      time.Duration `yaml:"request_delay"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
}

// LimitsConfig bounds how much of a profile is collected
type LimitsConfig struct {
	MaxPosts    int `yaml:"max_posts"`
	MaxComments int `yaml:"max_comments"`
}

// CacheConfig controls the collected-profile cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// OutputConfig controls report writing
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	JSON    bool   `yaml:"json"` // Also write the persona as JSON
	Verbose bool   `yaml:"verbose"`
}

// RulesConfig points at an optional YAML rule file replacing the built-ins
type RulesConfig struct {
	File string `yaml:"file,omitempty"`
}

// LLMConfig configures the optional narrative summary. Disabled unless a
// provider is set; never feeds back into trait inference.
type LLMConfig struct {
	Provider  string `yaml:"provider,omitempty"` // "openai" or "" (disabled)
	Model     string `yaml:"model,omitempty"`
	APIKey    string `yaml:"-"`
	BaseURL   string `yaml:"base_url,omitempty"` // Custom endpoint (OpenAI-compatible)
	Timeout   int    `yaml:"timeout,omitempty"`  // Seconds
	MaxTokens int    `yaml:"max_tokens,omitempty"`
}

// DefaultConfig returns the built-in defaults. Limits and the request
// delay match the original tool's documented behavior.
func DefaultConfig() *Config {
	return &Config{
		Reddit: RedditConfig{
			UserAgent:         "Personify/0.1 (+https://github.com/mvoloshin/personify)",
			BaseURL:           "https://oauth.reddit.com",
			AuthURL:           "https://www.reddit.com/api/v1/access_token",
			Timeout:           30 * time.Second,
			MaxRetries:        3,
			RequestDelay:      100 * time.Millisecond,
			RequestsPerSecond: 1,
			Burst:             5,
		},
		Limits: LimitsConfig{
			MaxPosts:    100,
			MaxComments: 200,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			Dir: "./personas",
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".personify-cache"
	}
	return filepath.Join(home, ".personify", "cache")
}
