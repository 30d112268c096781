package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name, e.g. TASKS_AUTH_JWT_SECRET.
const EnvPrefix = "TASKS"

// setDefaults registers the default for every key. Registering a key is also
// what lets viper.Unmarshal see values that only exist in the environment.
func setDefaults(v *viper.Viper) {
	v.SetDefault("stage", "dev")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "tasks")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "tasks.db")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 10)
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Files are looked up in the working directory: config.yaml first, then
// config.<stage>.yaml merged on top, where stage comes from TASKS_STAGE.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with an explicit directory for configuration files.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	stage := v.GetString("stage")
	v.SetConfigName("config." + stage)
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read %s config file: %w", stage, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
