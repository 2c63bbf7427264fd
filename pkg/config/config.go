package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv     = "CASAMOLINA_APP_ENV"
	EnvPort       = "CASAMOLINA_APP_PORT"
	EnvDBDSN      = "CASAMOLINA_DB_DSN"
	EnvDBHost     = "CASAMOLINA_DB_HOST"
	EnvDBUser     = "CASAMOLINA_DB_USER"
	EnvDBName     = "CASAMOLINA_DB_NAME"
	EnvRedisURL   = "CASAMOLINA_REDIS_URL"
	EnvJWTSecret  = "CASAMOLINA_JWT_SECRET"
	EnvJWTIssuer  = "CASAMOLINA_JWT_ISSUER"
	EnvJWTExpMins = "CASAMOLINA_JWT_EXPIRATION_MINUTES"
)

// SQLiteDevDSN is the file the sqlite flag stores local data in when no
// DSN is configured.
const SQLiteDevDSN = "file:casamolina_dev.db"

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Cart         CartConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	// The sqlite flag overrides the driver so local dev needs no Postgres
	// env at all; the DSN falls back to a local file.
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = SQLiteDevDSN
		}
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CASAMOLINA_APP_ENV" required:"true"`
	Port         string `envconfig:"CASAMOLINA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CASAMOLINA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CASAMOLINA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CASAMOLINA_DB_DSN"`
	Driver string `envconfig:"CASAMOLINA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CASAMOLINA_DB_HOST"`
	LegacyPort     int    `envconfig:"CASAMOLINA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CASAMOLINA_DB_USER"`
	LegacyPassword string `envconfig:"CASAMOLINA_DB_PASSWORD"`
	LegacyName     string `envconfig:"CASAMOLINA_DB_NAME"`
	LegacySSLMode  string `envconfig:"CASAMOLINA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CASAMOLINA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CASAMOLINA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CASAMOLINA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CASAMOLINA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CASAMOLINA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CASAMOLINA_REDIS_ADDR"`
	Password     string        `envconfig:"CASAMOLINA_REDIS_PASSWORD"`
	DB           int           `envconfig:"CASAMOLINA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CASAMOLINA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CASAMOLINA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CASAMOLINA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CASAMOLINA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CASAMOLINA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"CASAMOLINA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"CASAMOLINA_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"CASAMOLINA_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"CASAMOLINA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CASAMOLINA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CASAMOLINA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CASAMOLINA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CASAMOLINA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CASAMOLINA_ARGON_KEY_LEN" default:"32"`
}

// CartConfig controls how long idle session carts stay alive in Redis.
type CartConfig struct {
	SessionTTLMinutes int `envconfig:"CASAMOLINA_CART_SESSION_TTL_MINUTES" default:"240"`
}

// SessionTTL returns the cart TTL as a duration.
func (c CartConfig) SessionTTL() time.Duration {
	if c.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CASAMOLINA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CASAMOLINA_AUTO_MIGRATE" default:"false"`
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
