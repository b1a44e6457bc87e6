package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	Storage      StorageConfig
	DB           DBConfig
	Redis        RedisConfig
	Pricing      PricingConfig
	Checkout     CheckoutConfig
	Catalog      CatalogConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.Backend == StorageBackendDB {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if cfg.Storage.Backend == StorageBackendRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s or %s is required for the redis storage backend", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FK_APP_ENV" required:"true"`
	Port         string `envconfig:"FK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FK_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"FK_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects where the cart snapshot is written after every mutation.
type StorageConfig struct {
	Backend     string `envconfig:"FK_STORAGE_BACKEND" default:"file"`
	SnapshotKey string `envconfig:"FK_STORAGE_SNAPSHOT_KEY" default:"FATIMAS_KITCHEN_STATE"`
	FileDir     string `envconfig:"FK_STORAGE_FILE_DIR" default:".data"`
}

func (s *StorageConfig) validate() error {
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	switch s.Backend {
	case StorageBackendFile, StorageBackendRedis, StorageBackendDB, StorageBackendMemory:
	default:
		return fmt.Errorf("unsupported %s %q", EnvStorageBackend, s.Backend)
	}
	if strings.TrimSpace(s.SnapshotKey) == "" {
		return fmt.Errorf("%s must not be empty", EnvStorageSnapshotKey)
	}
	return nil
}

type DBConfig struct {
	DSN    string `envconfig:"FK_DB_DSN"`
	Driver string `envconfig:"FK_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"FK_DB_HOST"`
	Port     int    `envconfig:"FK_DB_PORT" default:"5432"`
	User     string `envconfig:"FK_DB_USER"`
	Password string `envconfig:"FK_DB_PASSWORD"`
	Name     string `envconfig:"FK_DB_NAME"`
	SSLMode  string `envconfig:"FK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FK_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"FK_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"FK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the snapshot table lives in a local sqlite file.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"FK_REDIS_URL"`
	Address      string        `envconfig:"FK_REDIS_ADDR"`
	Password     string        `envconfig:"FK_REDIS_PASSWORD"`
	DB           int           `envconfig:"FK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FK_REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"FK_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"FK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FK_REDIS_READ_TIMEOUT" default:"2s"`
	WriteTimeout time.Duration `envconfig:"FK_REDIS_WRITE_TIMEOUT" default:"2s"`
	SnapshotTTL  time.Duration `envconfig:"FK_REDIS_SNAPSHOT_TTL" default:"0s"`
}

// PricingConfig holds the operational constants used when composing a bill.
type PricingConfig struct {
	Currency     string `envconfig:"FK_PRICING_CURRENCY" default:"PKR"`
	TaxRateRaw   string `envconfig:"FK_PRICING_TAX_RATE" default:"0.05"`
	DeliveryFee  int64  `envconfig:"FK_PRICING_DELIVERY_FEE" default:"150"`
	MinimumOrder int64  `envconfig:"FK_PRICING_MINIMUM_ORDER" default:"500"`

	taxRate decimal.Decimal
}

// TaxRate returns the parsed tax rate as a fraction (0.05 for 5%).
func (p PricingConfig) TaxRate() decimal.Decimal {
	return p.taxRate
}

func (p *PricingConfig) validate() error {
	rate, err := decimal.NewFromString(strings.TrimSpace(p.TaxRateRaw))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", EnvPricingTaxRate, err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be in [0, 1), got %s", EnvPricingTaxRate, rate)
	}
	if p.DeliveryFee < 0 {
		return fmt.Errorf("%s must not be negative", EnvPricingDeliveryFee)
	}
	if p.MinimumOrder < 0 {
		return fmt.Errorf("%s must not be negative", EnvPricingMinimumOrder)
	}
	p.taxRate = rate
	return nil
}

type CheckoutConfig struct {
	ProcessingDelay time.Duration `envconfig:"FK_CHECKOUT_PROCESSING_DELAY" default:"2500ms"`
}

// CatalogConfig optionally points at a JSON voucher catalog replacing the built-in codes.
type CatalogConfig struct {
	VoucherFile string `envconfig:"FK_CATALOG_VOUCHER_FILE"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
