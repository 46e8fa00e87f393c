package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/foxseedlab/kaishu/internal/config"
	"github.com/foxseedlab/kaishu/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do/v2"
)

const databaseInitTimeout = 15 * time.Second

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (repository.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ctx, cancel := context.WithTimeout(context.Background(), databaseInitTimeout)
		defer cancel()
		return Open(ctx, cfg.DatabaseURL)
	})
}

// Open picks the backend from the URL: postgres:// and postgresql:// use pgx,
// sqlite://, file: and :memory: use the embedded SQLite driver.
func Open(ctx context.Context, databaseURL string) (repository.Repository, error) {
	if path, ok := sqlitePath(databaseURL); ok {
		r, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	p, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := RunPostgresMigration(ctx, p); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to run migration: %w", err)
	}
	return NewPostgresRepository(p), nil
}

func sqlitePath(databaseURL string) (string, bool) {
	switch {
	case databaseURL == ":memory:":
		return databaseURL, true
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return strings.TrimPrefix(databaseURL, "sqlite://"), true
	case strings.HasPrefix(databaseURL, "file:"):
		return databaseURL, true
	default:
		return "", false
	}
}
