// Package database provides database configuration management.
package database

import (
	"errors"
	"fmt"
	"time"
)

// Default configuration values
const (
	DefaultHost            = "localhost"
	DefaultPort            = "5432"
	DefaultUser            = "postgres"
	DefaultDBName          = "fightcrawl"
	DefaultSSLMode         = "disable"
	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 5 * time.Minute
)

// Config represents database configuration settings.
type Config struct {
	Host            string        `env:"DATABASE_HOST"              yaml:"host"`
	Port            string        `env:"DATABASE_PORT"              yaml:"port"`
	User            string        `env:"DATABASE_USER"              yaml:"user"`
	Password        string        `env:"DATABASE_PASSWORD"          yaml:"password"`
	DBName          string        `env:"DATABASE_DBNAME"            yaml:"dbname"`
	SSLMode         string        `env:"DATABASE_SSLMODE"           yaml:"sslmode"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS"    yaml:"max_open_conns"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS"    yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" yaml:"conn_max_lifetime"`
}

// New returns the default database configuration.
func New() *Config {
	return &Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		User:            DefaultUser,
		DBName:          DefaultDBName,
		SSLMode:         DefaultSSLMode,
		MaxOpenConns:    DefaultMaxOpenConns,
		MaxIdleConns:    DefaultMaxIdleConns,
		ConnMaxLifetime: DefaultConnMaxLifetime,
	}
}

// Validate validates the database configuration.
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("host is required")
	}
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.User == "" {
		return errors.New("user is required")
	}
	if c.DBName == "" {
		return errors.New("dbname is required")
	}
	if c.MaxOpenConns < 0 || c.MaxIdleConns < 0 {
		return errors.New("connection pool sizes must be non-negative")
	}
	return nil
}

// DSN returns the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
