package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ecotrack/internal/platform"
	"ecotrack/internal/service"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Platform platform.Config `yaml:"platform"`
	Telegram struct {
		BotToken string `yaml:"botToken"`
		Debug    bool   `yaml:"debug"`
	} `yaml:"telegram"`

	LogLevel    string `yaml:"logLevel"`
	LogEncoding string `yaml:"logEncoding"`
}

func loadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.AddConfigPath("./")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetDefault("logLevel", "info")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("telegram.botToken is required")
	}

	return &cfg, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogEncoding); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	client := platform.New(cfg.Platform)
	ecoBot := service.NewEcoBotService(client)

	relay, err := service.NewRelayService(service.RelayConfig{
		BotToken: cfg.Telegram.BotToken,
		Debug:    cfg.Telegram.Debug,
	}, ecoBot)
	if err != nil {
		zapLogger.Fatal("Failed to start relay", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	relay.Start(ctx)
	zapLogger.Info("ecobot relay stopped")
}
