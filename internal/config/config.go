// Package config содержит логику чтения конфигурации сервисов системы.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// OrderConfig содержит параметры конфигурации сервиса заказов.
type OrderConfig struct {
	RunAddress         string        `env:"RUN_ADDRESS"`
	DatabaseURI        string        `env:"DATABASE_URI"`
	UserServiceAddress string        `env:"USER_SERVICE_ADDRESS"`
	DirectoryTimeout   time.Duration `env:"DIRECTORY_TIMEOUT"`
	AMQPAddress        string        `env:"AMQP_ADDRESS"`
}

// ParseOrder считывает конфигурацию сервиса заказов из флагов командной строки и переменных окружения.
func ParseOrder() (*OrderConfig, error) {
	cfg := &OrderConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envUserServiceAddress := cfg.UserServiceAddress
	envDirectoryTimeout := cfg.DirectoryTimeout
	envAMQPAddress := cfg.AMQPAddress

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.UserServiceAddress, "u", "", "user directory service address")
	flag.DurationVar(&cfg.DirectoryTimeout, "t", 2*time.Second, "user directory request timeout")
	flag.StringVar(&cfg.AMQPAddress, "q", "", "AMQP broker address for order events")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envUserServiceAddress != "" {
		cfg.UserServiceAddress = envUserServiceAddress
	}
	if envDirectoryTimeout != 0 {
		cfg.DirectoryTimeout = envDirectoryTimeout
	}
	if envAMQPAddress != "" {
		cfg.AMQPAddress = envAMQPAddress
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg, nil
}

// UserConfig содержит параметры конфигурации сервиса справочника пользователей.
type UserConfig struct {
	RunAddress       string        `env:"RUN_ADDRESS"`
	DatabaseURI      string        `env:"DATABASE_URI"`
	RedisURI         string        `env:"REDIS_URI"`
	UserCacheTTL     time.Duration `env:"USER_CACHE_TTL"`
	AllUsersCacheTTL time.Duration `env:"ALL_USERS_CACHE_TTL"`
}

// ParseUser считывает конфигурацию сервиса справочника из флагов командной строки и переменных окружения.
func ParseUser() (*UserConfig, error) {
	cfg := &UserConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envRedisURI := cfg.RedisURI
	envUserCacheTTL := cfg.UserCacheTTL
	envAllUsersCacheTTL := cfg.AllUsersCacheTTL

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8081", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.RedisURI, "r", "", "redis URI for the directory cache")
	flag.DurationVar(&cfg.UserCacheTTL, "c", 10*time.Minute, "TTL for cached user entries")
	flag.DurationVar(&cfg.AllUsersCacheTTL, "s", 5*time.Minute, "TTL for the cached snapshot of all users")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envRedisURI != "" {
		cfg.RedisURI = envRedisURI
	}
	if envUserCacheTTL != 0 {
		cfg.UserCacheTTL = envUserCacheTTL
	}
	if envAllUsersCacheTTL != 0 {
		cfg.AllUsersCacheTTL = envAllUsersCacheTTL
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8081"
	}

	return cfg, nil
}
