package db

import (
	"database/sql"
	"embed"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gwu-libraries/wasync/errors"
)

const migrationsDir = "sqlite/migrations"

//go:embed sqlite/migrations/*.sql
var migrations embed.FS

// migration is one embedded SQL file; version is the numeric filename prefix
type migration struct {
	file    string
	version string
}

// Migrate brings the run-history schema up to date. Each embedded migration
// not yet recorded in schema_migrations runs in its own transaction.
func Migrate(db *sql.DB, logger *zap.SugaredLogger) error {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	pending, err := listMigrations()
	if err != nil {
		return err
	}

	applied := 0
	for _, m := range pending {
		done, err := isApplied(db, m)
		if err != nil {
			return err
		}
		if done {
			logger.Debugw("Migration already applied", "migration", m.file)
			continue
		}

		logger.Infow("Applying migration", "migration", m.file, "version", m.version)
		if err := apply(db, m); err != nil {
			return err
		}
		applied++
	}

	logger.Debugw("Schema up to date", "migrations", len(pending), "applied", applied)
	return nil
}

// listMigrations returns the embedded migrations in version order, so the
// schema_migrations table (000) is always created first
func listMigrations() ([]migration, error) {
	entries, err := migrations.ReadDir(migrationsDir)
	if err != nil {
		return nil, errors.Wrap(err, "read migrations")
	}

	var out []migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		version, _, _ := strings.Cut(name, "_")
		out = append(out, migration{file: name, version: version})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].file < out[j].file })
	return out, nil
}

// isApplied reports whether m is recorded. Before 000 has run the tracking
// table does not exist, which only 000 itself may tolerate.
func isApplied(db *sql.DB, m migration) (bool, error) {
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)", m.version).Scan(&exists)
	if err != nil {
		if m.version != "000" {
			return false, errors.Wrapf(err, "schema_migrations table missing, but migration is not 000: %s", m.file)
		}
		return false, nil
	}
	return exists, nil
}

func apply(db *sql.DB, m migration) error {
	body, err := migrations.ReadFile(path.Join(migrationsDir, m.file))
	if err != nil {
		return errors.Wrapf(err, "read %s", m.file)
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrapf(err, "begin tx for %s", m.file)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(string(body)); err != nil {
		return errors.Wrapf(err, "execute %s", m.file)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
		return errors.Wrapf(err, "record %s", m.file)
	}
	return errors.Wrapf(tx.Commit(), "commit %s", m.file)
}
