package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorageSQLite = "sqlite"
	StorageMySQL  = "mysql"
	StorageMongo  = "mongo"
)

type Config struct {
	Port      string `env:"PORT,      default=5000"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET, required"`

	TokenTTL        time.Duration `env:"TOKEN_TTL,        default=168h"`
	TokenIssuer     string        `env:"TOKEN_ISSUER,     default=portfolio-api"`
	BcryptCost      int           `env:"BCRYPT_COST,      default=10"`
	CORSOrigins     []string      `env:"CORS_ORIGINS,     default=http://localhost:5173,http://localhost:3000,http://localhost:5174,http://localhost:5175"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	// TrustedProxies are CIDRs of reverse proxies allowed to set
	// X-Forwarded-For. Empty means the peer address is used as is.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	Storage StorageConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Login   LoginConfig
	Seed    SeedConfig
}

type StorageConfig struct {
	Driver     string `env:"STORAGE_DRIVER, default=sqlite"`
	SQLitePath string `env:"SQLITE_PATH,    default=portfolio.db"`
	MySQLDSN   string `env:"MYSQL_DSN"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=portfolio"`
}

// RedisConfig is optional; an empty Addr disables login throttling.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Lockout     time.Duration `env:"LOGIN_LOCKOUT,      default=15m"`
}

type SeedConfig struct {
	AdminUsername          string `env:"SEED_ADMIN_USERNAME, default=admin"`
	AdminEmail             string `env:"SEED_ADMIN_EMAIL,    default=admin@rasulmamishov.com"`
	AdminPassword          string `env:"SEED_ADMIN_PASSWORD"`
	DemoUser               bool   `env:"SEED_DEMO_USER,      default=false"`
	MigrateLegacyPasswords bool   `env:"MIGRATE_LEGACY_PASSWORDS, default=false"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith decodes and validates configuration from the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case StorageSQLite, StorageMongo:
	case StorageMySQL:
		if c.Storage.MySQLDSN == "" {
			errs = append(errs, errors.New("MYSQL_DSN is required when STORAGE_DRIVER=mysql"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver))
	}

	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if _, err := c.ProxyNetworks(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ProxyNetworks parses TrustedProxies. A bare address is treated as a
// single-host network.
func (c *Config) ProxyNetworks() ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			ip := net.ParseIP(raw)
			if ip == nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES: invalid address %q", raw)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(raw)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}
