package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Addr string `toml:"addr"`
	// RateLimitRPS <= 0 disables inbound throttling.
	RateLimitRPS   float64 `toml:"rate_limit_rps"`
	RateLimitBurst int     `toml:"rate_limit_burst"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type SearchConfig struct {
	BaseURL    string   `toml:"base_url"`
	APIKey     string   `toml:"api_key"`
	MaxResults int      `toml:"max_results"`
	Timeout    Duration `toml:"timeout"`
	MaxRetries int      `toml:"max_retries"`
}

// GenerationConfig tunes one LLM stage.
type GenerationConfig struct {
	Temperature float32 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

type CacheConfig struct {
	Enabled    bool     `toml:"enabled"`
	TTL        Duration `toml:"ttl"`
	MaxEntries int      `toml:"max_entries"`
	RedisURL   string   `toml:"redis_url"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type Config struct {
	Server     ServerConfig     `toml:"server"`
	LLM        LLMConfig        `toml:"llm"`
	Search     SearchConfig     `toml:"search"`
	Extraction GenerationConfig `toml:"extraction"`
	Answer     GenerationConfig `toml:"answer"`
	Cache      CacheConfig      `toml:"cache"`
	Log        LogConfig        `toml:"log"`
}

// Duration decodes TOML strings such as "30s" or "15m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			RateLimitBurst: 10,
		},
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
		},
		Search: SearchConfig{
			BaseURL:    "https://api.vizlook.com",
			MaxResults: 6,
			Timeout:    Duration{60 * time.Second},
			MaxRetries: 1,
		},
		Extraction: GenerationConfig{Temperature: 0.2, MaxTokens: 1000},
		Answer:     GenerationConfig{Temperature: 0.7, MaxTokens: 2000},
		Cache: CacheConfig{
			TTL:        Duration{15 * time.Minute},
			MaxEntries: 1000,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the TOML file at path on top of Default. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when they are set.
func (c *Config) ApplyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if c.LLM.APIKey == "" && c.LLM.Provider == "gemini" {
		c.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if v := os.Getenv("VIZLOOK_API_KEY"); v != "" {
		c.Search.APIKey = v
	}
	if v := os.Getenv("VIZLOOK_BASE_URL"); v != "" {
		c.Search.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Cache.RedisURL = v
	}
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = b
		}
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Search.APIKey == "" {
		return errors.New("search api key is missing (set VIZLOOK_API_KEY or search.api_key)")
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive, got %d", c.Search.MaxResults)
	}
	if c.LLM.Provider == "" {
		return errors.New("llm provider is missing")
	}
	if err := c.Extraction.validate("extraction"); err != nil {
		return err
	}
	return c.Answer.validate("answer")
}

func (g GenerationConfig) validate(section string) error {
	if g.Temperature <= 0 {
		return fmt.Errorf("%s.temperature must be positive, got %v", section, g.Temperature)
	}
	if g.MaxTokens <= 0 {
		return fmt.Errorf("%s.max_tokens must be positive, got %d", section, g.MaxTokens)
	}
	return nil
}
