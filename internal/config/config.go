package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	JWTSecret       []byte
	SuperAdminEmail string

	CartStore string
	CartTTL   time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers     []string
	KafkaNotifyTopic string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	FreeShippingThreshold int64
	FlatShippingFee       int64

	StockTxMaxAttempts   int
	ReconcileConcurrency int
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env not loaded: %v, using process environment", err)
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "nk_store"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    strings.ToLower(EnvDefault("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:       []byte(os.Getenv("JWT_SECRET")),
		SuperAdminEmail: strings.ToLower(strings.TrimSpace(os.Getenv("SUPER_ADMIN_EMAIL"))),

		CartStore: strings.ToLower(EnvDefault("CART_STORE", "db")),
		CartTTL:   time.Duration(EnvIntDefault("CART_TTL_HOURS", 72)) * time.Hour,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       EnvIntDefault("REDIS_DB", 0),

		KafkaBrokers:     CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaNotifyTopic: EnvDefault("KAFKA_NOTIFY_TOPIC", "order-notifications"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),

		FreeShippingThreshold: int64(EnvIntDefault("FREE_SHIPPING_THRESHOLD", 499)),
		FlatShippingFee:       int64(EnvIntDefault("FLAT_SHIPPING_FEE", 40)),

		StockTxMaxAttempts:   EnvIntDefault("STOCK_TX_MAX_ATTEMPTS", 5),
		ReconcileConcurrency: EnvIntDefault("RECONCILE_CONCURRENCY", 4),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
