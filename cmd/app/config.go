package main

import (
	"fmt"
	"strings"
	"time"

	"ecotrack/internal/cache"
	"ecotrack/internal/platform"
	"ecotrack/internal/repository"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

const (
	EntitiesPlatform = "platform"
	EntitiesPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig      `yaml:"server"`
	Platform platform.Config   `yaml:"platform"`
	Database repository.Config `yaml:"database"`
	Redis    RedisConfig       `yaml:"redis"`
	Backend  BackendConfig     `yaml:"backend"`
	App      AppConfig         `yaml:"app"`
	Telegram TelegramConfig    `yaml:"telegram"`

	LogLevel    string `yaml:"logLevel"`
	LogEncoding string `yaml:"logEncoding"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type RedisConfig struct {
	cache.Config `mapstructure:",squash"`

	Enabled bool `yaml:"enabled"`
}

// BackendConfig selects the entity store: the hosted platform or PostgreSQL.
type BackendConfig struct {
	Entities string `yaml:"entities"`
	Migrate  bool   `yaml:"migrate"`
}

type AppConfig struct {
	Timezone string `yaml:"timezone"`
}

type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	Debug    bool   `yaml:"debug"`
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("backend.entities", EntitiesPlatform)
	viper.SetDefault("app.timezone", "UTC")
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("redis.ttl", cache.DefaultLeaderboardTTL)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend.Entities {
	case EntitiesPlatform, EntitiesPostgres:
	default:
		return fmt.Errorf("backend.entities must be %q or %q, got %q", EntitiesPlatform, EntitiesPostgres, c.Backend.Entities)
	}

	if c.Platform.BaseURL == "" || c.Platform.AppID == "" {
		return fmt.Errorf("platform.baseURL and platform.appID are required")
	}

	return nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid app.timezone %q: %w", c.App.Timezone, err)
	}
	return loc, nil
}
