package cli

import (
	"os"

	"github.com/spf13/viper"

	"github.com/ppiankov/claimsight/internal/model"
)

// loadConfig resolves the effective configuration: built-in defaults
// overridden by the config file and CLAIMSIGHT_* environment variables.
// Command flags apply their own overrides afterwards.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("service.base_url"); v != "" {
		cfg.Service.BaseURL = v
	}
	if v := viper.GetInt("history.capacity"); v > 0 {
		cfg.History.Capacity = v
	}

	if v := viper.GetDuration("http.timeout"); v > 0 {
		cfg.HTTP.Timeout = v
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.HTTP.UserAgent = v
	}
	cfg.HTTP.HTTPProxy = firstNonEmpty(viper.GetString("http.http_proxy"), os.Getenv("HTTP_PROXY"))
	cfg.HTTP.HTTPSProxy = firstNonEmpty(viper.GetString("http.https_proxy"), os.Getenv("HTTPS_PROXY"))
	cfg.HTTP.NoProxy = firstNonEmpty(viper.GetString("http.no_proxy"), os.Getenv("NO_PROXY"))

	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}
	if v := viper.GetStringSlice("server.allowed_origins"); len(v) > 0 {
		cfg.Server.AllowedOrigins = v
	}

	if v := viper.GetString("index.path"); v != "" {
		cfg.Index.Path = v
	}
	if v := viper.GetString("index.data_path"); v != "" {
		cfg.Index.DataPath = v
	}

	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := viper.GetInt("llm.timeout"); v > 0 {
		cfg.LLM.Timeout = v
	}
	if v := viper.GetInt("llm.max_tokens"); v > 0 {
		cfg.LLM.MaxTokens = v
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetDuration("cache.memory_ttl"); v > 0 {
		cfg.Cache.MemoryTTL = v
	}
	if v := viper.GetDuration("cache.disk_ttl"); v > 0 {
		cfg.Cache.DiskTTL = v
	}

	if v := viper.GetFloat64("rate_limiting.requests_per_second"); v > 0 {
		cfg.RateLimiting.RequestsPerSecond = v
	}
	if v := viper.GetInt("rate_limiting.burst_size"); v > 0 {
		cfg.RateLimiting.BurstSize = v
	}

	// API keys come from the environment only
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
