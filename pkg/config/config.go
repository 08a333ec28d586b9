package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Auth          AuthConfig
	CORS          CORSConfig
	Store         StoreConfig
	DB            DBConfig
	GCP           GCPConfig
	Redis         RedisConfig
	AuthRateLimit AuthRateLimitConfig
	PubSub        PubSubConfig
	Storage       StorageConfig
	Catalog       CatalogConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Auth.AdminEmails = normalizeEmails(cfg.Auth.AdminEmails)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Auth.AdminEmails) == 0 {
		return fmt.Errorf("%s must list at least one admin email", EnvAdminEmails)
	}

	switch c.Auth.Verifier {
	case VerifierGoogle:
	case VerifierHS256:
		if c.App.IsProd() {
			return fmt.Errorf("%s=%s is not allowed in %s", EnvAuthVerifier, VerifierHS256, AppEnvProd)
		}
		if c.Auth.DevSecret == "" {
			return fmt.Errorf("%s is required for the %s verifier", EnvAuthDevSecret, VerifierHS256)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvAuthVerifier, c.Auth.Verifier)
	}

	switch c.Store.Driver {
	case StoreDriverFirestore:
		if strings.TrimSpace(c.GCP.ProjectID) == "" {
			return fmt.Errorf("%s is required for the %s store", EnvGCPProjectID, StoreDriverFirestore)
		}
	case StoreDriverPostgres, StoreDriverSQLite:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s is required for the %s store", EnvDBDSN, c.Store.Driver)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStoreDriver, c.Store.Driver)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"BOLTFIT_APP_ENV" required:"true"`
	Port         string `envconfig:"BOLTFIT_APP_PORT" default:"8000"`
	Name         string `envconfig:"BOLTFIT_APP_NAME" default:"BOLT FIT Backend API"`
	LogLevel     string `envconfig:"BOLTFIT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BOLTFIT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// AuthConfig drives the admin gate. GoogleClientID doubles as the expected token audience.
type AuthConfig struct {
	GoogleClientID string        `envconfig:"BOLTFIT_GOOGLE_CLIENT_ID" required:"true"`
	AdminEmails    []string      `envconfig:"BOLTFIT_ADMIN_EMAILS" required:"true"`
	VerifyTimeout  time.Duration `envconfig:"BOLTFIT_AUTH_VERIFY_TIMEOUT" default:"10s"`
	Verifier       string        `envconfig:"BOLTFIT_AUTH_VERIFIER" default:"google"`
	DevSecret      string        `envconfig:"BOLTFIT_AUTH_DEV_SECRET"`
	DevIssuer      string        `envconfig:"BOLTFIT_AUTH_DEV_ISSUER" default:"boltfit-dev"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"BOLTFIT_CORS_ALLOWED_ORIGINS" default:"https://boldfit-admin.onrender.com,https://boldfit-g24k.onrender.com,http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000"`
	MaxAge         int      `envconfig:"BOLTFIT_CORS_MAX_AGE" default:"300"`
}

type StoreConfig struct {
	Driver     string        `envconfig:"BOLTFIT_STORE_DRIVER" default:"firestore"`
	Collection string        `envconfig:"BOLTFIT_STORE_COLLECTION" default:"products"`
	Timeout    time.Duration `envconfig:"BOLTFIT_STORE_TIMEOUT" default:"10s"`
}

type DBConfig struct {
	DSN             string        `envconfig:"BOLTFIT_DB_DSN"`
	MaxOpenConns    int           `envconfig:"BOLTFIT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BOLTFIT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BOLTFIT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BOLTFIT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"BOLTFIT_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"BOLTFIT_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"BOLTFIT_GOOGLE_APPLICATION_CREDENTIALS"`
}

// RedisConfig is optional; without a URL the login throttle and idempotency replay are off.
type RedisConfig struct {
	URL          string        `envconfig:"BOLTFIT_REDIS_URL"`
	PoolSize     int           `envconfig:"BOLTFIT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BOLTFIT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BOLTFIT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BOLTFIT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BOLTFIT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type AuthRateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"BOLTFIT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit int           `envconfig:"BOLTFIT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type PubSubConfig struct {
	ProductEventsTopic       string `envconfig:"BOLTFIT_PUBSUB_PRODUCT_EVENTS_TOPIC"`
	ImageCleanupSubscription string `envconfig:"BOLTFIT_PUBSUB_IMAGE_CLEANUP_SUBSCRIPTION" default:"product-images-cleanup"`
}

func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.ProductEventsTopic) != ""
}

// StorageConfig names the bucket product images are uploaded to. Only the
// image cleanup worker needs it.
type StorageConfig struct {
	BucketName string `envconfig:"BOLTFIT_STORAGE_BUCKET"`
}

type CatalogConfig struct {
	DefaultBrand string   `envconfig:"BOLTFIT_CATALOG_DEFAULT_BRAND" default:"BOLT FIT"`
	Categories   []string `envconfig:"BOLTFIT_CATALOG_CATEGORIES" default:"Shirts,T-Shirts,Pants,Trending"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BOLTFIT_AUTO_MIGRATE" default:"false"`
}

func normalizeEmails(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if email := strings.ToLower(strings.TrimSpace(v)); email != "" {
			out = append(out, email)
		}
	}
	return out
}
