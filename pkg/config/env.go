package config

// EnvPrefix is handed to envconfig; every field carries an explicit FK_ name.
const EnvPrefix = "FK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageBackendFile   = "file"
	StorageBackendRedis  = "redis"
	StorageBackendDB     = "db"
	StorageBackendMemory = "memory"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv              = "FK_APP_ENV"
	EnvPort                = "FK_APP_PORT"
	EnvLogLevel            = "FK_LOG_LEVEL"
	EnvStorageBackend      = "FK_STORAGE_BACKEND"
	EnvStorageSnapshotKey  = "FK_STORAGE_SNAPSHOT_KEY"
	EnvStorageFileDir      = "FK_STORAGE_FILE_DIR"
	EnvDBDSN               = "FK_DB_DSN"
	EnvDBDriver            = "FK_DB_DRIVER"
	EnvDBHost              = "FK_DB_HOST"
	EnvDBUser              = "FK_DB_USER"
	EnvDBName              = "FK_DB_NAME"
	EnvRedisURL            = "FK_REDIS_URL"
	EnvRedisAddr           = "FK_REDIS_ADDR"
	EnvPricingTaxRate      = "FK_PRICING_TAX_RATE"
	EnvPricingDeliveryFee  = "FK_PRICING_DELIVERY_FEE"
	EnvPricingMinimumOrder = "FK_PRICING_MINIMUM_ORDER"
	EnvCheckoutDelay       = "FK_CHECKOUT_PROCESSING_DELAY"
	EnvCatalogVoucherFile  = "FK_CATALOG_VOUCHER_FILE"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
