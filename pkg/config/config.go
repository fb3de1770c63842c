package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every Crystara environment variable.
	EnvPrefix = "CRYSTARA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "CRYSTARA_DB_DSN"
	EnvDBHost = "CRYSTARA_DB_HOST"
	EnvDBUser = "CRYSTARA_DB_USER"
	EnvDBName = "CRYSTARA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Razorpay  RazorpayConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Features  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CRYSTARA_APP_ENV" required:"true"`
	Port         string `envconfig:"CRYSTARA_APP_PORT" default:"5001"`
	LogLevel     string `envconfig:"CRYSTARA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CRYSTARA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CRYSTARA_DB_DSN"`
	Driver string `envconfig:"CRYSTARA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CRYSTARA_DB_HOST"`
	LegacyPort     int    `envconfig:"CRYSTARA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CRYSTARA_DB_USER"`
	LegacyPassword string `envconfig:"CRYSTARA_DB_PASSWORD"`
	LegacyName     string `envconfig:"CRYSTARA_DB_NAME"`
	LegacySSLMode  string `envconfig:"CRYSTARA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CRYSTARA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CRYSTARA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CRYSTARA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CRYSTARA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CRYSTARA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CRYSTARA_REDIS_ADDR"`
	Password     string        `envconfig:"CRYSTARA_REDIS_PASSWORD"`
	DB           int           `envconfig:"CRYSTARA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CRYSTARA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CRYSTARA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CRYSTARA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CRYSTARA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CRYSTARA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AuthConfig holds the shared secret of the hosted identity provider. Tokens
// are minted by the provider; this service only verifies them.
type AuthConfig struct {
	JWTSecret         string `envconfig:"CRYSTARA_JWT_SECRET" required:"true"`
	JWTIssuer         string `envconfig:"CRYSTARA_JWT_ISSUER" default:"crystara-auth"`
	ExpirationMinutes int    `envconfig:"CRYSTARA_JWT_EXPIRATION_MINUTES" default:"60"`
}

type RazorpayConfig struct {
	KeyID     string `envconfig:"CRYSTARA_RAZORPAY_KEY_ID" required:"true"`
	KeySecret string `envconfig:"CRYSTARA_RAZORPAY_KEY_SECRET" required:"true"`
}

type CORSConfig struct {
	AllowedOrigin string `envconfig:"CRYSTARA_CORS_ORIGIN" default:"http://localhost:5173"`
}

type RateLimitConfig struct {
	PaymentWindow  time.Duration `envconfig:"CRYSTARA_RATE_LIMIT_PAYMENT_WINDOW" default:"1m"`
	PaymentIPLimit int           `envconfig:"CRYSTARA_RATE_LIMIT_PAYMENT_IP_LIMIT" default:"30"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CRYSTARA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
