package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

const defaultTimeout = 5 * time.Second

// Config selects the SQL backend.
type Config struct {
	Driver string
	DSN    string
}

// Open connects to the configured backend and verifies the connection with a
// ping. For MySQL the DSN is rewritten so UPDATE reports matched rows rather
// than changed rows, which the repositories rely on to detect missing ids.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.Driver {
	case DriverSQLite:
		db, err = sql.Open("sqlite", sqliteDSN(cfg.DSN))
		if err != nil {
			return nil, fmt.Errorf("sqlite open: %w", err)
		}
		// Single writer; avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
	case DriverMySQL:
		mc, perr := mysql.ParseDSN(cfg.DSN)
		if perr != nil {
			return nil, fmt.Errorf("mysql dsn: %w", perr)
		}
		mc.ClientFoundRows = true
		db, err = sql.Open("mysql", mc.FormatDSN())
		if err != nil {
			return nil, fmt.Errorf("mysql open: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(30 * time.Minute)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s ping: %w", cfg.Driver, err)
	}
	return db, nil
}

func sqliteDSN(path string) string {
	if path == "" {
		path = "portfolio.db"
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}
