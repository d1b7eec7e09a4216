package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.Port)
	}
	if cfg.TokenTTL != 168*time.Hour {
		t.Fatalf("expected 7 day token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.Storage.Driver != StorageSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.Storage.Driver)
	}
	if len(cfg.CORSOrigins) != 4 || cfg.CORSOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("redis should be disabled by default, got %q", cfg.Redis.Addr)
	}
	if cfg.Login.MaxAttempts != 5 || cfg.Login.Lockout != 15*time.Minute {
		t.Fatalf("unexpected login limits: %+v", cfg.Login)
	}
	if cfg.Seed.AdminPassword != "" || cfg.Seed.DemoUser {
		t.Fatalf("seeding should be off by default: %+v", cfg.Seed)
	}
	if cfg.IsProduction() {
		t.Fatalf("default env should not be production")
	}
}

func TestLoadWith_RequiresSecret(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     "s3cret",
		"PORT":           "8081",
		"STORAGE_DRIVER": "mysql",
		"MYSQL_DSN":      "user:pass@tcp(localhost:3306)/portfolio",
		"CORS_ORIGINS":   "https://rasulmamishov.com",
		"LOGIN_LOCKOUT":  "1m",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	if cfg.Port != "8081" || cfg.Storage.Driver != StorageMySQL || cfg.Login.Lockout != time.Minute {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "postgres"}, "STORAGE_DRIVER"},
		{"mysql without dsn", map[string]string{"STORAGE_DRIVER": "mysql"}, "MYSQL_DSN"},
		{"bcrypt cost too high", map[string]string{"BCRYPT_COST": "40"}, "BCRYPT_COST"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.env["JWT_SECRET"] = "s3cret"
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(tc.env))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}
}

func TestProxyNetworks(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "s3cret",
		"TRUSTED_PROXIES": "10.0.0.0/8, 192.0.2.7,2001:db8::1",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	nets, err := cfg.ProxyNetworks()
	if err != nil {
		t.Fatalf("ProxyNetworks: %v", err)
	}
	if len(nets) != 3 {
		t.Fatalf("expected 3 networks, got %v", nets)
	}
	if got := nets[0].String(); got != "10.0.0.0/8" {
		t.Fatalf("unexpected cidr %s", got)
	}
	if got := nets[1].String(); got != "192.0.2.7/32" {
		t.Fatalf("bare ipv4 should be a /32, got %s", got)
	}
	if got := nets[2].String(); got != "2001:db8::1/128" {
		t.Fatalf("bare ipv6 should be a /128, got %s", got)
	}
}

func TestLoadWith_RejectsBadTrustedProxy(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "s3cret",
		"TRUSTED_PROXIES": "10.0.0.0/8,proxy.internal",
	}))
	if err == nil || !strings.Contains(err.Error(), "TRUSTED_PROXIES") {
		t.Fatalf("expected TRUSTED_PROXIES error, got %v", err)
	}
}
