package repository

import (
	"context"
	"embed"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies embedded schema migrations against the pool. The pool is
// wrapped as *sql.DB for goose and stays usable afterwards.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	goose.SetTableName("schema_migrations")

	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing migration handle", "error", err)
		}
	}()

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return err
	}
	logger.Info("database migrations applied")
	return nil
}
