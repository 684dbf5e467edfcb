package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset" mapstructure:"dataset"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Export    ExportConfig    `yaml:"export" mapstructure:"export"`
}

// DatasetConfig names the two candidate dataset resources. The primary
// is preferred; the fallback is tried once on primary failure.
type DatasetConfig struct {
	PrimaryURL  string `yaml:"primary_url" mapstructure:"primary_url"`
	FallbackURL string `yaml:"fallback_url" mapstructure:"fallback_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// StoreConfig configures the snapshot store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the dashboard API server.
type ServerConfig struct {
	Port             int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins   []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	SearchRatePerSec float64  `yaml:"search_rate_per_sec" mapstructure:"search_rate_per_sec"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// AnthropicConfig configures AI suggestion generation.
type AnthropicConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	Model         string `yaml:"model" mapstructure:"model"`
	MaxTokens     int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	MaxConcurrent int    `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// ExportConfig configures the export command.
type ExportConfig struct {
	DefaultFormat string `yaml:"default_format" mapstructure:"default_format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ESG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.primary_url", "https://peter890821.github.io/esg-eval-dashboard/data/esg_indicators_ai.json")
	v.SetDefault("dataset.fallback_url", "https://peter890821.github.io/esg-eval-dashboard/data/esg_indicators.json")
	v.SetDefault("dataset.timeout_secs", 30)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "esg_dashboard.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.search_rate_per_sec", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("anthropic.max_concurrent", 4)
	v.SetDefault("export.default_format", "csv")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
