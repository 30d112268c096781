package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// Supported storage backends.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Stage    string         `mapstructure:"stage"    validate:"required"`
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// URL, when set, takes precedence over the individual connection parameters.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"   validate:"required,oneof=postgres sqlite"`
	URL      string `mapstructure:"url"      validate:"omitempty,url"`
	Host     string `mapstructure:"host"     validate:"required_if=Driver postgres"`
	Port     int    `mapstructure:"port"     validate:"required_if=Driver postgres,omitempty,gt=0,lt=65536"`
	User     string `mapstructure:"user"     validate:"required_if=Driver postgres"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"     validate:"required_if=Driver postgres"`
	SSLMode  string `mapstructure:"sslmode"  validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	Path     string `mapstructure:"path"     validate:"required_if=Driver sqlite"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"omitempty,min=4,max=31"`
}

// DSN returns the connection string for the configured driver.
// For postgres it is URL, or a postgres:// URL assembled from the parts.
// For sqlite it is Path.
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.Path
	}
	if d.URL != "" {
		return d.URL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{d.SSLMode}}.Encode()
	}
	return u.String()
}

// String describes the database target without credentials.
func (d DatabaseConfig) String() string {
	if d.Driver == DriverSQLite {
		return fmt.Sprintf("sqlite:%s", d.Path)
	}
	if d.URL != "" {
		if u, err := url.Parse(d.URL); err == nil {
			return fmt.Sprintf("postgres://%s%s", u.Host, u.Path)
		}
		return "postgres://[unparseable url]"
	}
	return fmt.Sprintf("postgres://%s:%d/%s", d.Host, d.Port, d.Name)
}
