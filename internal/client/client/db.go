// Package client wires the local cache database together: it opens the
// SQLite file, applies migrations, and hands out repository instances.
package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/confsync/confsync/internal/client/migrations"
	"github.com/confsync/confsync/internal/client/repositories/bookmarks"
	"github.com/confsync/confsync/internal/client/repositories/guests"
	"github.com/confsync/confsync/internal/client/repositories/sessions"
)

type Repositories struct {
	Sessions  sessions.Repository
	Guests    guests.Repository
	Bookmarks bookmarks.Repository
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the cache database at dsn, applies migrations, and
// returns the handle plus repositories bound to it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, *Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	repos := &Repositories{
		Sessions:  sessions.NewSQLiteRepository(db),
		Guests:    guests.NewSQLiteRepository(db),
		Bookmarks: bookmarks.NewSQLiteRepository(db),
	}
	return db, repos, nil
}
