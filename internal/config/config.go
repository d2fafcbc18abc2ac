package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Reddit    RedditConfig    `mapstructure:"reddit"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Raffle    RaffleConfig    `mapstructure:"raffle"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// RedditConfig holds fetcher configuration
type RedditConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	UserAgent  string `mapstructure:"user_agent"`
	FetchDelay string `mapstructure:"fetch_delay"`
}

// StorageConfig holds storage-related configuration
type StorageConfig struct {
	Type string `mapstructure:"type"`
	Path string `mapstructure:"path"`
}

// RaffleConfig holds reconciliation settings
type RaffleConfig struct {
	// FilteredBots are automation accounts dropped from API responses.
	FilteredBots []string `mapstructure:"filtered_bots"`
}

// RateLimitConfig holds the per-IP API rate limit
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

// LoggingConfig selects the zap configuration
type LoggingConfig struct {
	Mode string `mapstructure:"mode"` // "development" or "production"
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("reddit.base_url", "https://old.reddit.com")
	viper.SetDefault("reddit.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	viper.SetDefault("reddit.fetch_delay", "2s")
	viper.SetDefault("storage.type", "sqlite")
	viper.SetDefault("storage.path", "./data/users.db")
	viper.SetDefault("raffle.filtered_bots", []string{"BotAndHisBoy", "WatchURaffle", "raffle_verification"})
	viper.SetDefault("ratelimit.requests_per_minute", 10)
	viper.SetDefault("ratelimit.burst", 5)
	viper.SetDefault("logging.mode", "production")

	// Environment variable bindings
	viper.AutomaticEnv()
	viper.BindEnv("reddit.base_url", "REDDIT_BASE_URL")
	viper.BindEnv("reddit.user_agent", "REDDIT_USER_AGENT")
	viper.BindEnv("storage.path", "STORAGE_PATH")
	viper.BindEnv("logging.mode", "LOG_MODE")

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		log.Println("No config file found, using defaults and environment variables")
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
