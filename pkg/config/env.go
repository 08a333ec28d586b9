package config

const EnvPrefix = "BOLTFIT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StoreDriverFirestore = "firestore"
	StoreDriverPostgres  = "postgres"
	StoreDriverSQLite    = "sqlite"

	VerifierGoogle = "google"
	VerifierHS256  = "hs256"
)

const (
	EnvAppEnv             = "BOLTFIT_APP_ENV"
	EnvPort               = "BOLTFIT_APP_PORT"
	EnvLogLevel           = "BOLTFIT_LOG_LEVEL"
	EnvGoogleClientID     = "BOLTFIT_GOOGLE_CLIENT_ID"
	EnvAdminEmails        = "BOLTFIT_ADMIN_EMAILS"
	EnvAuthVerifier       = "BOLTFIT_AUTH_VERIFIER"
	EnvAuthDevSecret      = "BOLTFIT_AUTH_DEV_SECRET"
	EnvCORSOrigins        = "BOLTFIT_CORS_ALLOWED_ORIGINS"
	EnvStoreDriver        = "BOLTFIT_STORE_DRIVER"
	EnvStoreCollection    = "BOLTFIT_STORE_COLLECTION"
	EnvDBDSN              = "BOLTFIT_DB_DSN"
	EnvGCPProjectID       = "BOLTFIT_GCP_PROJECT_ID"
	EnvRedisURL           = "BOLTFIT_REDIS_URL"
	EnvPubSubEventsTopic  = "BOLTFIT_PUBSUB_PRODUCT_EVENTS_TOPIC"
	EnvCatalogCategories  = "BOLTFIT_CATALOG_CATEGORIES"
	EnvPubSubImageCleanup = "BOLTFIT_PUBSUB_IMAGE_CLEANUP_SUBSCRIPTION"
	EnvStorageBucket      = "BOLTFIT_STORAGE_BUCKET"
)
