package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	IdentityStoreMongo    = "mongo"
	IdentityStorePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Digest   DigestConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"3000"`
}

type MongoDBConfig struct {
	URI      string `env:"MONGO_URI,required,notEmpty"`
	Database string `env:"MONGO_DATABASE" envDefault:"customer_satisfaction"`
}

// PostgresConfig используется только при IDENTITY_STORE=postgres
type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN"`
}

// RedisConfig - кеш отчётов, пустой адрес отключает кеш
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REPORT_CACHE_TTL" envDefault:"1m"`
}

// KafkaConfig - пустой список брокеров отключает публикацию событий
type KafkaConfig struct {
	Brokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	ReviewTopic string   `env:"KAFKA_REVIEW_TOPIC" envDefault:"review_events"`
	DigestTopic string   `env:"KAFKA_DIGEST_TOPIC" envDefault:"report_digests"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET,required,notEmpty"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

type AuthConfig struct {
	IdentityStore string `env:"IDENTITY_STORE" envDefault:"mongo"`
	BcryptCost    int    `env:"BCRYPT_COST" envDefault:"10"`
}

// DigestConfig - cron расписание дайджеста отчётов, пустое значение отключает задачу
type DigestConfig struct {
	Schedule string `env:"REPORT_DIGEST_SCHEDULE"`
}

type LogConfig struct {
	Level        string `env:"LOG_LEVEL" envDefault:"info"`
	LogstashAddr string `env:"LOGSTASH_ADDR"`
}

// Load читает конфигурацию из переменных окружения и проверяет её
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth.IdentityStore {
	case IdentityStoreMongo:
	case IdentityStorePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when IDENTITY_STORE=%s", IdentityStorePostgres)
		}
	default:
		return fmt.Errorf("unsupported IDENTITY_STORE %q", c.Auth.IdentityStore)
	}

	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.Auth.BcryptCost)
	}

	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}

	return nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

func (c *KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}
