package config

// EnvPrefix scopes every environment variable consumed by the platform.
const EnvPrefix = "BEAUTYHUB"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, error text).
const (
	EnvAppEnv    = "BEAUTYHUB_APP_ENV"
	EnvPort      = "BEAUTYHUB_APP_PORT"
	EnvDBDSN     = "BEAUTYHUB_DB_DSN"
	EnvDBHost    = "BEAUTYHUB_DB_HOST"
	EnvDBUser    = "BEAUTYHUB_DB_USER"
	EnvDBName    = "BEAUTYHUB_DB_NAME"
	EnvRedisURL  = "BEAUTYHUB_REDIS_URL"
	EnvJWTSecret = "BEAUTYHUB_JWT_SECRET"
	EnvJWTIssuer = "BEAUTYHUB_JWT_ISSUER"
	EnvJWTExp    = "BEAUTYHUB_JWT_EXPIRATION_MINUTES"

	EnvGCPProjectID    = "BEAUTYHUB_GCP_PROJECT_ID"
	EnvGCSBucket       = "BEAUTYHUB_GCS_BUCKET_NAME"
	EnvGCSUploadExpiry = "BEAUTYHUB_GCS_UPLOAD_URL_EXPIRY"
	EnvGCSDownload     = "BEAUTYHUB_GCS_DOWNLOAD_URL_EXPIRY"

	EnvPubSubDomainTopic = "BEAUTYHUB_PUBSUB_DOMAIN_TOPIC"
	EnvPubSubDomainSub   = "BEAUTYHUB_PUBSUB_DOMAIN_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
