package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

// SeedUser describes an account created at first boot.
type SeedUser struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// Bootstrapper prepares the credential store at startup.
type Bootstrapper struct {
	users      ports.UserRepository
	bcryptCost int
	log        zerolog.Logger
}

func NewBootstrapper(users ports.UserRepository, bcryptCost int, log zerolog.Logger) *Bootstrapper {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Bootstrapper{users: users, bcryptCost: bcryptCost, log: log}
}

// SeedUsers inserts each account unless its username or email is already
// taken. Returns the number of accounts created.
func (b *Bootstrapper) SeedUsers(ctx context.Context, seeds ...SeedUser) (int, error) {
	created := 0
	for _, seed := range seeds {
		if seed.Username == "" || seed.Email == "" || seed.Password == "" {
			continue
		}
		role := seed.Role
		if role == "" {
			role = domain.RoleUser
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), b.bcryptCost)
		if err != nil {
			return created, fmt.Errorf("seed %s: hash password: %w", seed.Username, err)
		}

		_, err = b.users.Create(ctx, &domain.User{
			Username:     seed.Username,
			Email:        strings.ToLower(seed.Email),
			PasswordHash: string(hash),
			Role:         role,
			CreatedAt:    time.Now().UTC(),
		})
		if errors.Is(err, domain.ErrUserExists) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", seed.Username, err)
		}

		created++
		b.log.Info().Str("username", seed.Username).Str("role", string(role)).Msg("seeded user")
	}
	return created, nil
}

// MigrateLegacyPasswords rehashes rows whose stored password is not a bcrypt
// hash, treating the stored value as the plaintext. Running it twice is a
// no-op. Returns the number of rows rewritten.
func (b *Bootstrapper) MigrateLegacyPasswords(ctx context.Context) (int, error) {
	users, err := b.users.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrate passwords: list users: %w", err)
	}

	migrated := 0
	for _, u := range users {
		if isBcryptHash(u.PasswordHash) || u.PasswordHash == "" {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.PasswordHash), b.bcryptCost)
		if err != nil {
			return migrated, fmt.Errorf("migrate passwords: hash for user %s: %w", u.ID, err)
		}
		if err := b.users.UpdatePasswordHash(ctx, u.ID, string(hash)); err != nil {
			return migrated, fmt.Errorf("migrate passwords: update user %s: %w", u.ID, err)
		}
		migrated++
		b.log.Warn().Str("user_id", u.ID).Msg("legacy plaintext password rehashed")
	}
	return migrated, nil
}

func isBcryptHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
