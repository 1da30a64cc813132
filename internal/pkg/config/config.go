package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, backend URL, etc.)
// - default: Values common across all environments (timeouts, polling cadence,
//   reservation fraction, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Reconcile ReconcileConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

// BackendConfig points at the booking backend that fronts the payment
// provider (submission, status polling, availability, provider query).
type BackendConfig struct {
	BaseURL string        `envconfig:"BACKEND_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	// Channel carrying provider payment updates, shared by all transactions.
	PaymentChannel string `envconfig:"REDIS_PAYMENT_CHANNEL" default:"paymentUpdate"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Africa/Nairobi"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"10800"` // 3*60*60
}

// ReconcileConfig holds the confirmation-reconciliation constants. These are
// deliberately configuration, not code: polling cadence and budget differ
// between provider sandboxes and production.
type ReconcileConfig struct {
	PollInterval        time.Duration `envconfig:"RECONCILE_POLL_INTERVAL" default:"15s"`
	PollAttempts        int           `envconfig:"RECONCILE_POLL_ATTEMPTS" default:"8"`
	ReservationFraction float64       `envconfig:"RECONCILE_RESERVATION_FRACTION" default:"0.10"`
	AutoDismissAfter    time.Duration `envconfig:"RECONCILE_AUTO_DISMISS_AFTER" default:"5s"`
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
		Backend: BackendConfig{
			BaseURL: "http://localhost:18080",
			Timeout: 2 * time.Second,
		},
		Redis: RedisConfig{
			Addr:           "localhost:16379", // Test Redis port
			PaymentChannel: "paymentUpdate",
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
			MaxAge:       12 * time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Africa/Nairobi",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 10800,
		},
		Reconcile: ReconcileConfig{
			PollInterval:        10 * time.Millisecond,
			PollAttempts:        8,
			ReservationFraction: 0.10,
			AutoDismissAfter:    0, // disabled unless a test opts in
		},
	}
}
