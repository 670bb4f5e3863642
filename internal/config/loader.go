package config

import (
	"context"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// LoadConfig loads the configuration from file and environment variables.
// The config file is watched so that log-level style settings can be tuned
// without a restart; structural settings still require one.
func LoadConfig(log logger.Logger) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "require")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_timeout", 10)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("kafka.audit_topic", "resguardo.audit.events")
	v.SetDefault("jwt.issuer", "resguardo")
	v.SetDefault("jwt.audience", "resguardo-console")
	v.SetDefault("ai.timeout", 30)
	v.SetDefault("storage.timeout", 30)
	v.SetDefault("provisioning.timeout", 15)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.default_rpm", 300)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("tracing.service_name", "resguardo-api")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/resguardo/")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("RESGUARDO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.ErrInternal.WithMessage("failed to unmarshal config").WithError(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info(context.Background(), "config file changed, reloading",
			logger.Fields{"file": e.Name})
		if err := v.Unmarshal(&cfg); err != nil {
			log.Warn(context.Background(), "failed to reload config",
				logger.Fields{"error": err.Error()})
		}
	})
	v.WatchConfig()

	return &cfg, nil
}
