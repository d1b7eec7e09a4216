// Package storage opens whichever backend STORAGE_DRIVER selects and hands
// back its repositories.
package storage

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
	"github.com/rasulmamishov/portfolio-api/internal/infrastructure/db/mongo"
	"github.com/rasulmamishov/portfolio-api/internal/infrastructure/db/sqldb"
	"github.com/rasulmamishov/portfolio-api/internal/pkg/config"
)

// UserStore is the credential store plus the role write that only
// maintenance commands use.
type UserStore interface {
	ports.UserRepository
	SetRole(ctx context.Context, id string, role domain.Role) error
}

// Stores groups the repositories of one backend.
type Stores struct {
	Users        UserStore
	Testimonials ports.TestimonialRepository
	Contacts     ports.ContactRepository
	// Ping backs the health endpoints.
	Ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Close releases the backend connection.
func (s *Stores) Close(ctx context.Context) error {
	return s.close(ctx)
}

// Open connects to the configured backend and prepares its schema or indexes.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	if cfg.Storage.Driver == config.StorageMongo {
		return openMongo(ctx, cfg, log)
	}
	return openSQL(ctx, cfg, log)
}

func openMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  cfg.TokenIssuer,
	})
	if err != nil {
		return nil, err
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")
	return &Stores{
		Users:        mongo.NewUserRepository(db),
		Testimonials: mongo.NewTestimonialRepository(db),
		Contacts:     mongo.NewContactRepository(db),
		Ping:         func(ctx context.Context) error { return client.Ping(ctx, nil) },
		close:        client.Disconnect,
	}, nil
}

func openSQL(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	dsn := cfg.Storage.SQLitePath
	if cfg.Storage.Driver == config.StorageMySQL {
		dsn = cfg.Storage.MySQLDSN
	}

	db, err := sqldb.Open(ctx, sqldb.Config{Driver: cfg.Storage.Driver, DSN: dsn})
	if err != nil {
		return nil, err
	}
	if err := sqldb.Migrate(ctx, db, cfg.Storage.Driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info().Str("driver", cfg.Storage.Driver).Msg("connected to sql database")
	return &Stores{
		Users:        sqldb.NewUserRepository(db),
		Testimonials: sqldb.NewTestimonialRepository(db),
		Contacts:     sqldb.NewContactRepository(db),
		Ping:         db.PingContext,
		close:        func(context.Context) error { return db.Close() },
	}, nil
}
