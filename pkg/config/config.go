package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// DBConfig holds ClickHouse connection configuration
type DBConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// NewDBConfigFromURI parses a ClickHouse URI and returns a DBConfig
func NewDBConfigFromURI(uri string) (*DBConfig, error) {
	if !strings.HasPrefix(uri, "clickhouse://") {
		return nil, fmt.Errorf("invalid ClickHouse URI: must start with clickhouse://")
	}

	parsedURL, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ClickHouse URI: %w", err)
	}

	config := &DBConfig{
		Host:     parsedURL.Hostname(),
		Database: strings.TrimPrefix(parsedURL.Path, "/"),
	}

	// Parse port
	if parsedURL.Port() != "" {
		port, err := strconv.Atoi(parsedURL.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid port in URI: %w", err)
		}
		config.Port = port
	} else {
		config.Port = 9000 // default ClickHouse native port
	}

	// Parse user info
	if parsedURL.User != nil {
		config.User = parsedURL.User.Username()
		if password, ok := parsedURL.User.Password(); ok {
			config.Password = password
		}
	}

	if config.User == "" {
		config.User = "default"
	}
	if config.Database == "" {
		config.Database = "default"
	}

	return config, nil
}

// NewDBConfigFromFlags creates a DBConfig from individual CLI flags and environment variables
func NewDBConfigFromFlags(host, user, password, database string, port int) *DBConfig {
	return &DBConfig{
		Host:     getStringWithFallback(host, "CLICKHOUSE_HOST", "localhost"),
		Port:     getIntWithFallback(port, "CLICKHOUSE_PORT", 9000),
		Database: getStringWithFallback(database, "CLICKHOUSE_DATABASE", "default"),
		User:     getStringWithFallback(user, "CLICKHOUSE_USER", "default"),
		Password: getStringWithFallback(password, "CLICKHOUSE_PASSWORD", ""),
	}
}

// Addr returns the host:port address used by the native protocol
func (c *DBConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MaskedURI returns a URI representation with the password hidden
func (c *DBConfig) MaskedURI() string {
	return fmt.Sprintf("clickhouse://%s@%s:%d/%s", c.User, c.Host, c.Port, c.Database)
}

// Validate checks if the configuration has required fields
func (c *DBConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("database port %d is out of range", c.Port)
	}
	return nil
}

// getStringWithFallback returns the flag value, or env var, or default
func getStringWithFallback(flag, envVar, defaultValue string) string {
	if flag != "" {
		return flag
	}
	if envValue := os.Getenv(envVar); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntWithFallback returns the flag value, or env var, or default
func getIntWithFallback(flag int, envVar string, defaultValue int) int {
	if flag != 0 {
		return flag
	}
	if envValue := os.Getenv(envVar); envValue != "" {
		if parsed, err := strconv.Atoi(envValue); err == nil {
			return parsed
		}
	}
	return defaultValue
}
