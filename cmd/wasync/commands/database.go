package commands

import (
	"database/sql"

	"github.com/gwu-libraries/wasync/am"
	"github.com/gwu-libraries/wasync/db"
	"github.com/gwu-libraries/wasync/errors"
	"github.com/gwu-libraries/wasync/history"
	"github.com/gwu-libraries/wasync/logger"
)

// openDatabase opens and migrates the run-history database
func openDatabase(cfg *am.Config) (*sql.DB, error) {
	if !cfg.Database.Enabled {
		return nil, errors.WithHint(
			errors.New("run history is disabled"),
			"set database.enabled = true in am.toml")
	}
	database, err := db.OpenWithMigrations(cfg.Database.Path, logger.ComponentLogger("db"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open run history at %s", cfg.Database.Path)
	}
	return database, nil
}

// openHistory returns a store for recording a run, or nil when history is
// disabled or unavailable. A run never fails because history could not be opened.
func openHistory(cfg *am.Config) (*history.Store, func()) {
	if !cfg.Database.Enabled {
		return nil, func() {}
	}
	database, err := openDatabase(cfg)
	if err != nil {
		logger.Warnw("Run history unavailable, continuing without it", "error", err.Error())
		return nil, func() {}
	}
	return history.NewStore(database, logger.ComponentLogger("history")), func() { database.Close() }
}
