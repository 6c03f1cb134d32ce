package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Cart          CartConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Media         MediaConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
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
	Env          string `envconfig:"BEAUTYHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"BEAUTYHUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BEAUTYHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BEAUTYHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BEAUTYHUB_DB_DSN"`
	Driver string `envconfig:"BEAUTYHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BEAUTYHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"BEAUTYHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BEAUTYHUB_DB_USER"`
	LegacyPassword string `envconfig:"BEAUTYHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"BEAUTYHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"BEAUTYHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BEAUTYHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BEAUTYHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BEAUTYHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BEAUTYHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BEAUTYHUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BEAUTYHUB_REDIS_ADDR"`
	Password     string        `envconfig:"BEAUTYHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"BEAUTYHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BEAUTYHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BEAUTYHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BEAUTYHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BEAUTYHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BEAUTYHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BEAUTYHUB_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BEAUTYHUB_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BEAUTYHUB_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"BEAUTYHUB_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the Redis session lifetime configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BEAUTYHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BEAUTYHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BEAUTYHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BEAUTYHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BEAUTYHUB_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"BEAUTYHUB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"BEAUTYHUB_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"BEAUTYHUB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"BEAUTYHUB_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"BEAUTYHUB_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"BEAUTYHUB_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate   bool   `envconfig:"BEAUTYHUB_AUTO_MIGRATE" default:"false"`
	GCSAccessMode string `envconfig:"BEAUTYHUB_GCS_ACCESS_MODE" default:"public"`
}

type CartConfig struct {
	// StoreRetries bounds internal retries of idempotent cart store operations
	// before a transient storage failure is surfaced to the caller.
	StoreRetries      int           `envconfig:"BEAUTYHUB_CART_STORE_RETRIES" default:"3"`
	StoreRetryBackoff time.Duration `envconfig:"BEAUTYHUB_CART_STORE_RETRY_BACKOFF" default:"50ms"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"BEAUTYHUB_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"BEAUTYHUB_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"BEAUTYHUB_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"BEAUTYHUB_GCS_BUCKET_NAME" required:"true"`
	UploadURLExpiry   time.Duration `envconfig:"BEAUTYHUB_GCS_UPLOAD_URL_EXPIRY" required:"true"`
	DownloadURLExpiry time.Duration `envconfig:"BEAUTYHUB_GCS_DOWNLOAD_URL_EXPIRY" required:"true"`
}

type MediaConfig struct {
	MaxUploadMB    int `envconfig:"BEAUTYHUB_MAX_UPLOAD_MB" default:"25"`
	ImageMaxWidth  int `envconfig:"BEAUTYHUB_MEDIA_IMAGE_MAX_WIDTH" default:"1920"`
	ImageMaxHeight int `envconfig:"BEAUTYHUB_MEDIA_IMAGE_MAX_HEIGHT" default:"1080"`
}

type PubSubConfig struct {
	DomainTopic        string `envconfig:"BEAUTYHUB_PUBSUB_DOMAIN_TOPIC" required:"true"`
	DomainSubscription string `envconfig:"BEAUTYHUB_PUBSUB_DOMAIN_SUBSCRIPTION" required:"true"`
}

type OutboxConfig struct {
	BatchSize      int    `envconfig:"BEAUTYHUB_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int    `envconfig:"BEAUTYHUB_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int    `envconfig:"BEAUTYHUB_OUTBOX_MAX_ATTEMPTS" default:"10"`
	MetricsAddr    string `envconfig:"BEAUTYHUB_OUTBOX_METRICS_ADDR" default:""`
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
