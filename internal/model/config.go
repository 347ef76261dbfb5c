// Package model holds the configuration shared across commands.
package model

import "time"

// Config is the full tool configuration. Resolution order is CLI flags, then
// DEPUTES_* environment variables, then ~/.deputes/config.yaml, then these
// defaults.
type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	Cache  CacheConfig  `yaml:"cache"`
	Output OutputConfig `yaml:"output"`
	Rate   RateConfig   `yaml:"rate"`
	LLM    LLMConfig    `yaml:"llm"`
}

// HTTPConfig controls the fetcher.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	InsecureTLS  bool          `yaml:"insecure_tls"`
}

// CacheConfig controls the response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// OutputConfig controls where artifacts land and how chatty the CLI is.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Verbose bool   `yaml:"verbose"`
}

// RateConfig bounds concurrent detail-page fetches.
type RateConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
	Workers           int     `yaml:"workers"`
}

// LLMConfig configures the optional natural-language summary. Disabled unless
// a provider is set; never affects data artifacts.
type LLMConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"`
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Deputes/0.1 (+https://github.com/ppiankov/deputes)",
			MaxBodyBytes: 10_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.deputes/cache by the CLI
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   6 * time.Hour,
		},
		Output: OutputConfig{
			Dir: "data_deputes",
		},
		Rate: RateConfig{
			RequestsPerSecond: 2,
			BurstSize:         4,
			Workers:           4,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 600,
		},
	}
}
