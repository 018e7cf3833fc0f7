package config

import (
	"fmt"
	"os"
	"strconv"
)

// Бэкенды key-value хранилища каталога
const (
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

// Config содержит все настройки Admin Service
// Включает конфигурацию HTTP сервера, хранилища каталога (Redis или
// PostgreSQL), MongoDB для журнала действий и Kafka для уведомлений
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Redis    RedisConfig
	Database DatabaseConfig
	MongoDB  MongoConfig
	Kafka    KafkaConfig
	Stats    StatsConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host     string // Адрес хоста (по умолчанию 0.0.0.0)
	Port     string // Порт сервера (по умолчанию 8085)
	LogLevel string // Уровень логирования (по умолчанию info)
}

// StoreConfig - выбор бэкенда хранилища каталога
type StoreConfig struct {
	Backend string // redis (по умолчанию) или postgres
}

// RedisConfig - настройки подключения к Redis
// Основной бэкенд хранилища: обе коллекции лежат целиком в JSON
// под двумя фиксированными ключами
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// DatabaseConfig - настройки подключения к PostgreSQL
// Альтернативный бэкенд хранилища для окружений без Redis
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MongoConfig - настройки MongoDB для журнала действий администратора
type MongoConfig struct {
	URI      string
	Database string
}

// KafkaConfig - настройки Kafka для событий уведомлений
// Исходы admin-команд публикуются в топик admin_notifications
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// StatsConfig - расписание периодического пересчета метрик дашборда
type StatsConfig struct {
	CronSchedule string // cron-выражение, по умолчанию раз в минуту
}

// Load загружает конфигурацию из переменных окружения
// Возвращает ошибку, если не удалось распарсить значения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	backend := getEnv("STORE_BACKEND", StoreBackendRedis)
	if backend != StoreBackendRedis && backend != StoreBackendPostgres {
		return nil, fmt.Errorf("invalid STORE_BACKEND value: %s", backend)
	}

	return &Config{
		Server: ServerConfig{
			Host:     getEnv("SERVER_HOST", "0.0.0.0"),
			Port:     getEnv("SERVER_PORT", "8085"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Backend: backend,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "admin_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		MongoDB: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "admin_service"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "admin_notifications"),
		},
		Stats: StatsConfig{
			CronSchedule: getEnv("STATS_CRON_SCHEDULE", "@every 1m"),
		},
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
