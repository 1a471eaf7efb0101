// Package schema prepares the PostgreSQL database before the service starts
// serving: it creates the database when missing and applies the initial
// schema. Both steps are safe to run on every startup.
package schema

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spycat-agency/service-mission/internal/common/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	sqlStateInvalidCatalogName = "3D000"
	sqlStateDuplicateDatabase  = "42P04"
)

// EnsureDatabaseExists connects to the service database and, if the server
// reports it does not exist, creates it through the administrative database.
func EnsureDatabaseExists(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) error {
	conn, err := pgx.Connect(ctx, cfg.DSN())
	if err == nil {
		return conn.Close(ctx)
	}
	if !hasSQLState(err, sqlStateInvalidCatalogName) {
		return fmt.Errorf("failed to connect to database %q: %w", cfg.DBName, err)
	}

	log.Info("database does not exist, creating it", zap.String("database", cfg.DBName))

	admin, err := pgx.Connect(ctx, cfg.AdminDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to admin database %q: %w", cfg.AdminDBName, err)
	}
	defer func() { _ = admin.Close(ctx) }()

	stmt := "CREATE DATABASE " + pgx.Identifier{cfg.DBName}.Sanitize()
	if _, err := admin.Exec(ctx, stmt); err != nil {
		if hasSQLState(err, sqlStateDuplicateDatabase) {
			return nil
		}
		return fmt.Errorf("failed to create database %q: %w", cfg.DBName, err)
	}

	log.Info("database created", zap.String("database", cfg.DBName))
	return nil
}

// EnsureSchema applies the embedded migrations over a dedicated connection
// that is closed before returning. The statements are guarded by existence
// checks, so databases created before migrations were tracked are adopted
// as-is.
func EnsureSchema(cfg config.DatabaseConfig, log *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrationURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn("failed to close migrator", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debug("schema up to date")
			return nil
		}
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, _, _ := m.Version()
	log.Info("schema migrated", zap.Uint("version", version))
	return nil
}

// migrationURL points golang-migrate's pgx/v5 driver at the service database.
func migrationURL(cfg config.DatabaseConfig) string {
	return "pgx5://" + strings.TrimPrefix(cfg.DatabaseURL(), "postgres://")
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
