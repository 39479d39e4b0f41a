package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/preseries/api-examples/pkg/preseries"
)

// Config holds the full application configuration.
type Config struct {
	API    preseries.Config `yaml:"api" mapstructure:"api"`
	Enrich EnrichConfig     `yaml:"enrich" mapstructure:"enrich"`
	Log    LogConfig        `yaml:"log" mapstructure:"log"`
}

// EnrichConfig configures the enrichment fetch phase.
type EnrichConfig struct {
	BatchSize    int    `yaml:"batch_size" mapstructure:"batch_size"`
	ProfilesPath string `yaml:"profiles_path" mapstructure:"profiles_path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. Credentials are
// usually supplied as PRESERIES_API_USERNAME and PRESERIES_API_API_KEY.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PRESERIES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("api.username", "")
	v.SetDefault("api.api_key", "")
	v.SetDefault("api.protocol", "https")
	v.SetDefault("api.host", "preseries.io")
	v.SetDefault("api.version", "zion")
	v.SetDefault("api.timeout_secs", 180)
	v.SetDefault("api.max_retries", preseries.DefaultMaxRetries)
	v.SetDefault("enrich.batch_size", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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
