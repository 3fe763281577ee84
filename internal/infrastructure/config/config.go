package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/motorlend/motorlend/internal/domain/service"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type VinDecoderConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

type JWTConfig struct {
	Secret        string
	PublicKeyPEM  string
	PrivateKeyPEM string
	Issuer        string
	Expiration    time.Duration
}

type Config struct {
	GRPCPort    int
	HTTPPort    int
	LogLevel    string
	LogFormat   string
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Redis       RedisConfig
	VinDecoder  VinDecoderConfig
	JWT         JWTConfig
	Thresholds  service.Thresholds
	Valuation   service.ValuationConfig
	ServiceName string
}

func (c Config) Validate() error {
	if c.DB.Password == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required")
	}
	if c.JWT.Secret == "" && c.JWT.PublicKeyPEM == "" && c.JWT.PrivateKeyPEM == "" {
		return fmt.Errorf("JWT_SECRET or a JWT key pair is required")
	}
	return c.Thresholds.Validate()
}

func Load() Config {
	return Config{
		GRPCPort:  getEnvInt("GRPC_PORT", 9090),
		HTTPPort:  getEnvInt("HTTP_PORT", 8080),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "motorlend"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "motorlend"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("VALUATION_CACHE_TTL_MINUTES", 60)) * time.Minute,
		},
		VinDecoder: VinDecoderConfig{
			BaseURL:    getEnv("VIN_DECODER_URL", "https://vin-decoder.internal"),
			APIKey:     getEnv("VIN_DECODER_API_KEY", ""),
			Timeout:    time.Duration(getEnvInt("VIN_DECODER_TIMEOUT_SECONDS", 5)) * time.Second,
			MaxRetries: getEnvInt("VIN_DECODER_MAX_RETRIES", 3),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			PublicKeyPEM:  getEnv("JWT_PUBLIC_KEY", ""),
			PrivateKeyPEM: getEnv("JWT_PRIVATE_KEY", ""),
			Issuer:        getEnv("JWT_ISSUER", "motorlend"),
			Expiration:    time.Duration(getEnvInt("JWT_EXPIRATION_MINUTES", 60)) * time.Minute,
		},
		Thresholds:  loadThresholds(),
		Valuation:   service.DefaultValuationConfig(),
		ServiceName: "motorlend",
	}
}

// loadThresholds reads the eligibility criteria, falling back to the
// production defaults per field.
func loadThresholds() service.Thresholds {
	defaults := service.DefaultThresholds()
	return service.Thresholds{
		MinCreditScore:           getEnvInt("MIN_CREDIT_SCORE", defaults.MinCreditScore),
		MaxLoanToValueRatio:      getEnvFloat("MAX_LOAN_TO_VALUE_RATIO", defaults.MaxLoanToValueRatio),
		MinDownPaymentPercentage: getEnvFloat("MIN_DOWN_PAYMENT_PERCENTAGE", defaults.MinDownPaymentPercentage),
		MaxLoanTermMonths:        getEnvInt("MAX_LOAN_TERM_MONTHS", defaults.MaxLoanTermMonths),
		Rates: service.RateTable{
			Excellent: getEnvFloat("RATE_EXCELLENT", defaults.Rates.Excellent),
			Good:      getEnvFloat("RATE_GOOD", defaults.Rates.Good),
			Fair:      getEnvFloat("RATE_FAIR", defaults.Rates.Fair),
			Poor:      getEnvFloat("RATE_POOR", defaults.Rates.Poor),
		},
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
