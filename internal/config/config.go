package config

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API       *APIConfig       `mapstructure:"api"`
	Gin       *GinConfig       `mapstructure:"gin"`
	Postgres  *PostgresConfig  `mapstructure:"postgres"`
	RateLimit *RateLimitConfig `mapstructure:"ratelimit"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AdminToken         string   `mapstructure:"admin_token"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RateLimitConfig struct {
	MutationLimit         int `mapstructure:"mutation_limit"`
	MutationWindowSeconds int `mapstructure:"mutation_window_seconds"`
	ReadLimit             int `mapstructure:"read_limit"`
	ReadWindowSeconds     int `mapstructure:"read_window_seconds"`
}

func Load(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	config := &AppConfig{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed", zap.String("file", e.Name))
	})

	loadSecretsFromEnv(config)

	return config, nil
}

// Secrets and deploy-specific values come from the environment and take
// precedence over the config file.
func loadSecretsFromEnv(config *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		config.API.Port = v
	}
	if v := os.Getenv("JWT_SIGNING_KEY"); v != "" {
		config.API.JWTSigningKey = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		config.API.AdminToken = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		config.Postgres.Password = v
	}
}
