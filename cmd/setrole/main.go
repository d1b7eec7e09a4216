// Command setrole promotes or demotes an account. There is no HTTP route for
// role changes; admins are made here or by first-boot seeding.
//
//	setrole -user alice -role admin
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/infrastructure/db/storage"
	"github.com/rasulmamishov/portfolio-api/internal/pkg/config"
	"github.com/rasulmamishov/portfolio-api/pkg/logger"
)

func main() {
	var identifier, role string
	flag.StringVar(&identifier, "user", "", "username or email of the account")
	flag.StringVar(&role, "role", "", "new role: user or admin")
	flag.Parse()

	if identifier == "" || role == "" {
		fmt.Fprintln(os.Stderr, "both -user and -role are required")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "setrole"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer st.Close(context.Background())

	u, err := setRole(ctx, st.Users, identifier, role)
	if err != nil {
		log.Error().Err(err).Str("user", identifier).Msg("role not changed")
		os.Exit(1)
	}
	log.Info().Str("user_id", u.ID).Str("username", u.Username).Str("role", string(u.Role)).Msg("role updated")
}

// setRole resolves the account the same way login does and writes the new
// role. The change applies to admin routes on the next request, even for
// tokens issued earlier.
func setRole(ctx context.Context, users storage.UserStore, identifier, role string) (*domain.User, error) {
	next := domain.Role(role)
	if next != domain.RoleUser && next != domain.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	u, err := users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if err := users.SetRole(ctx, u.ID, next); err != nil {
		return nil, err
	}
	u.Role = next
	return u, nil
}
