package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   collaborator endpoints), security settings
// - default: Values common across all environments (timeouts, TTL windows)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	Services ServicesConfig
	Checkout CheckoutConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// ServicesConfig holds the collaborator endpoints the checkout saga calls.
type ServicesConfig struct {
	CartBaseURL        string        `envconfig:"CART_SERVICE_URL" required:"true"`
	DiscountBaseURL    string        `envconfig:"DISCOUNT_SERVICE_URL" required:"true"`
	FulfillmentBaseURL string        `envconfig:"FULFILLMENT_SERVICE_URL" required:"true"`
	PaymentBaseURL     string        `envconfig:"PAYMENT_SERVICE_URL" required:"true"`
	RequestTimeout     time.Duration `envconfig:"SERVICE_REQUEST_TIMEOUT" default:"5s"`
	PaymentTimeout     time.Duration `envconfig:"PAYMENT_REQUEST_TIMEOUT" default:"10s"`
}

type CheckoutConfig struct {
	// SessionLifetime is the lookahead window between initiation and the
	// session's logical expiry.
	SessionLifetime time.Duration `envconfig:"CHECKOUT_SESSION_LIFETIME" default:"15m"`
	// BestEffortTimeout bounds compensating and notification calls that run
	// detached from the caller's context.
	BestEffortTimeout time.Duration `envconfig:"CHECKOUT_BEST_EFFORT_TIMEOUT" default:"10s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Store-Number,X-Order-Number"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// BuildMigrateDSN returns the DSN in the scheme golang-migrate's pgx driver
// expects.
func (c *DBConfig) BuildMigrateDSN() string {
	return fmt.Sprintf(
		"pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Addr: "localhost:16380",
		},
		Services: ServicesConfig{
			CartBaseURL:        "http://localhost:9001",
			DiscountBaseURL:    "http://localhost:9002",
			FulfillmentBaseURL: "http://localhost:9003",
			PaymentBaseURL:     "http://localhost:9004",
			RequestTimeout:     2 * time.Second,
			PaymentTimeout:     2 * time.Second,
		},
		Checkout: CheckoutConfig{
			SessionLifetime:   15 * time.Minute,
			BestEffortTimeout: 2 * time.Second,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
	}
}
