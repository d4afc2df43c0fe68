package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "tacocrew"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvDBDSN  = "TACOCREW_DB_DSN"
	EnvDBHost = "TACOCREW_DB_HOST"
	EnvDBUser = "TACOCREW_DB_USER"
	EnvDBName = "TACOCREW_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Ordering     OrderingConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TACOCREW_APP_ENV" required:"true"`
	Port         string `envconfig:"TACOCREW_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TACOCREW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TACOCREW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TACOCREW_DB_DSN"`
	Driver string `envconfig:"TACOCREW_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TACOCREW_DB_HOST"`
	LegacyPort     int    `envconfig:"TACOCREW_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TACOCREW_DB_USER"`
	LegacyPassword string `envconfig:"TACOCREW_DB_PASSWORD"`
	LegacyName     string `envconfig:"TACOCREW_DB_NAME"`
	LegacySSLMode  string `envconfig:"TACOCREW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TACOCREW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TACOCREW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TACOCREW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TACOCREW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TACOCREW_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TACOCREW_REDIS_ADDR"`
	Password     string        `envconfig:"TACOCREW_REDIS_PASSWORD"`
	DB           int           `envconfig:"TACOCREW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TACOCREW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TACOCREW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TACOCREW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TACOCREW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TACOCREW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// OrderingConfig points at the legacy taco ordering backend.
type OrderingConfig struct {
	BaseURL           string        `envconfig:"TACOCREW_ORDERING_BASE_URL" required:"true"`
	Timeout           time.Duration `envconfig:"TACOCREW_ORDERING_TIMEOUT" default:"15s"`
	ReplayConcurrency int           `envconfig:"TACOCREW_ORDERING_REPLAY_CONCURRENCY" default:"4"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TACOCREW_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TACOCREW_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	// Only postgres DSNs can be assembled from the legacy parts.
	if db.Driver == DriverSQLite {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
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
