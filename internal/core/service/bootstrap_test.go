package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

func TestBootstrapper_SeedUsers(t *testing.T) {
	repo := newStubUserRepo()
	b := NewBootstrapper(repo, bcrypt.MinCost, zerolog.Nop())

	seeds := []SeedUser{
		{Username: "admin", Email: "Admin@Example.com", Password: "adminpass", Role: domain.RoleAdmin},
		{Username: "demo", Email: "demo@example.com", Password: "password123"},
		{Username: "skipped", Email: "skip@example.com"},
	}

	n, err := b.SeedUsers(context.Background(), seeds...)
	if err != nil {
		t.Fatalf("SeedUsers: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 seeded, got %d", n)
	}

	// Second run is a no-op.
	n, err = b.SeedUsers(context.Background(), seeds...)
	if err != nil || n != 0 {
		t.Fatalf("expected idempotent seeding, got n=%d err=%v", n, err)
	}

	admin, err := repo.FindByIdentifier(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("admin not found: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", admin.Role)
	}

	demo, _ := repo.FindByIdentifier(context.Background(), "demo")
	if demo.Role != domain.RoleUser {
		t.Fatalf("expected default user role, got %s", demo.Role)
	}
}

func TestBootstrapper_MigrateLegacyPasswords(t *testing.T) {
	repo := newStubUserRepo()
	legacy := repo.insertRaw(&domain.User{Username: "old", Email: "old@x.io", PasswordHash: "plainpass", Role: domain.RoleUser})

	b := NewBootstrapper(repo, bcrypt.MinCost, zerolog.Nop())
	if _, err := b.SeedUsers(context.Background(), SeedUser{Username: "new", Email: "new@x.io", Password: "newpass1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	n, err := b.MigrateLegacyPasswords(context.Background())
	if err != nil {
		t.Fatalf("MigrateLegacyPasswords: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 migrated row, got %d", n)
	}
	if _, ok := repo.updated[legacy.ID]; !ok {
		t.Fatalf("legacy row was not rewritten")
	}

	n, _ = b.MigrateLegacyPasswords(context.Background())
	if n != 0 {
		t.Fatalf("second run should be a no-op, got %d", n)
	}

	// The migrated account can now log in with its old password.
	tokens := newTestTokens(t)
	auth := NewAuthService(repo, tokens, zerolog.Nop(), WithBcryptCost(bcrypt.MinCost))
	if _, err := auth.Login(context.Background(), ports.LoginInput{Identifier: "old", Password: "plainpass"}); err != nil {
		t.Fatalf("login after migration: %v", err)
	}
}
