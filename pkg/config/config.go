package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "OPENLOT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "OPENLOT_DB_DSN"
	EnvDBHost = "OPENLOT_DB_HOST"
	EnvDBUser = "OPENLOT_DB_USER"
	EnvDBName = "OPENLOT_DB_NAME"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Reports      ReportsConfig
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
	Env          string `envconfig:"OPENLOT_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"OPENLOT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OPENLOT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"OPENLOT_DB_DSN"`
	Driver string `envconfig:"OPENLOT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"OPENLOT_DB_HOST"`
	LegacyPort     int    `envconfig:"OPENLOT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"OPENLOT_DB_USER"`
	LegacyPassword string `envconfig:"OPENLOT_DB_PASSWORD"`
	LegacyName     string `envconfig:"OPENLOT_DB_NAME"`
	LegacySSLMode  string `envconfig:"OPENLOT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"OPENLOT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OPENLOT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OPENLOT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OPENLOT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver targets SQLite.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"OPENLOT_REDIS_URL"`
	Address      string        `envconfig:"OPENLOT_REDIS_ADDR"`
	Password     string        `envconfig:"OPENLOT_REDIS_PASSWORD"`
	DB           int           `envconfig:"OPENLOT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OPENLOT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OPENLOT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OPENLOT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OPENLOT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OPENLOT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. The report
// cache is optional and the seed tooling runs fine without it.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"OPENLOT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"OPENLOT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"OPENLOT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"OPENLOT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"OPENLOT_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"OPENLOT_AUTO_MIGRATE" default:"false"`
	SeedDemo    bool `envconfig:"OPENLOT_SEED_DEMO" default:"true"`
}

type ReportsConfig struct {
	CacheTTL time.Duration `envconfig:"OPENLOT_REPORT_CACHE_TTL" default:"5m"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	// SQLite callers pass a file path through DSN directly; nothing to assemble.
	if db.IsSQLite() {
		return fmt.Errorf("%s is required when driver is sqlite", EnvDBDSN)
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
