package model

import "time"

// Config is the complete ClaimSight configuration.
// Values are resolved once at startup (flags > env > config file > defaults)
// and are immutable for the lifetime of the session.
type Config struct {
	Service      ServiceConfig   `yaml:"service"`
	History      HistoryConfig   `yaml:"history"`
	HTTP         HTTPConfig      `yaml:"http"`
	Server       ServerConfig    `yaml:"server"`
	Index        IndexConfig     `yaml:"index"`
	LLM          LLMConfig       `yaml:"llm"`
	Cache        CacheConfig     `yaml:"cache"`
	RateLimiting RateLimitConfig `yaml:"rate_limiting"`
}

// ServiceConfig describes the remote claims query service consumed by the client.
type ServiceConfig struct {
	BaseURL string `yaml:"base_url"`
}

// HistoryConfig bounds the conversation history.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// HTTPConfig holds client-side transport settings.
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	HTTPProxy  string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy string        `yaml:"https_proxy,omitempty"`
	NoProxy    string        `yaml:"no_proxy,omitempty"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// IndexConfig locates the search index and its source dataset.
type IndexConfig struct {
	Path     string `yaml:"path"`
	DataPath string `yaml:"data_path"`
}

// LLMConfig configures answer generation for the serve-side assistant.
// An empty Provider disables generation; canned responses are used instead.
type LLMConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // environment only, never written to config files
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// CacheConfig configures the assistant answer cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// RateLimitConfig bounds request rates on the serve side.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL: "http://localhost:8000",
		},
		History: HistoryConfig{
			Capacity: 20,
		},
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "ClaimSight/0.1 (+https://github.com/ppiankov/claimsight)",
		},
		Server: ServerConfig{
			Addr:           ":8000",
			AllowedOrigins: []string{"*"},
		},
		Index: IndexConfig{
			Path:     "index.json",
			DataPath: "claims_data.csv",
		},
		LLM: LLMConfig{
			Provider:  "", // disabled by default
			Timeout:   30,
			MaxTokens: 500,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".claimsight-cache",
			MemoryTTL: 5 * time.Minute,
			DiskTTL:   1 * time.Hour,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 5,
			BurstSize:         10,
		},
	}
}
