package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server    ServerConfig    // Настройки HTTP сервера
	Storage   StorageConfig   // Настройки файлового хранилища
	JWT       JWTConfig       // Настройки JWT авторизации
	Bootstrap BootstrapConfig // Учетные данные администратора по умолчанию
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port string `envconfig:"SERVER_PORT" default:"8080"`
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
}

// StorageConfig содержит настройки документного хранилища
type StorageConfig struct {
	// Директория с файлами коллекций (users.json, tasks.json)
	DataDir string `envconfig:"DATA_DIR" default:"data"`
}

// JWTConfig содержит настройки JWT авторизации
type JWTConfig struct {
	Secret          string `envconfig:"JWT_SECRET" required:"true"`
	ExpirationHours int    `envconfig:"JWT_EXPIRATION_HOURS" default:"1"`
}

// BootstrapConfig содержит учетные данные администратора,
// создаваемого через /install
type BootstrapConfig struct {
	AdminUsername string `envconfig:"BOOTSTRAP_ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"BOOTSTRAP_ADMIN_PASSWORD" default:"admin123"`
}

// GetExpiration возвращает срок действия токена как time.Duration
func (j JWTConfig) GetExpiration() time.Duration {
	return time.Duration(j.ExpirationHours) * time.Hour
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
