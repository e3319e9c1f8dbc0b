// Copyright (c) 2026 Comuna. All rights reserved.
// Author: dev@comuna.ec

// Package migration provides a thin wrapper around golang-migrate for
// running document-store migrations (index and collection bootstrap).
//
// # Architecture
//
// This package belongs to the Infrastructure layer. It enforces index
// idempotency during application startup, ensuring the database is always
// in the correct state before traffic is served.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// mongodb driver registers the "mongodb" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	// file source reads .json migration files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp applies all pending UP migrations.
//
// The migrate mongodb driver takes the target database from the URI path,
// while the application keeps the database name in a separate setting, so
// the URI is completed with the database before it is handed to migrate.
//
// # Parameters
//   - uri: A mongodb:// connection URI, with or without a database name.
//   - database: Database name applied when the URI path is empty.
//   - migrationsPath: Filesystem path to the migrations directory.
//   - logger: Structured logger for migration events.
func RunUp(uri string, database string, migrationsPath string, logger *slog.Logger) error {
	sourceURL := "file://" + migrationsPath

	databaseURL, err := migrateURI(uri, database)
	if err != nil {
		return err
	}

	migrator, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	// Enable verbose logging via the slog bridge.
	migrator.Log = &migrateLogger{logger: logger}

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}

	if isDirty {
		return fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", currentVersion)
	}

	logger.Info("migration_started", slog.Int("current_version", int(currentVersion)))

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.Int("from_version", int(currentVersion)),
		slog.Int("to_version", int(newVersion)),
	)

	return nil
}

// migrateURI returns the connection URI with the database name in the path,
// as the migrate mongodb driver requires. A URI that already names a
// database is passed through untouched.
func migrateURI(uri string, database string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("migration: invalid connection uri: %w", err)
	}

	if strings.Trim(parsed.Path, "/") == "" {
		parsed.Path = "/" + database
	}

	return parsed.String(), nil
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
