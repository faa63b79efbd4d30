package db

import (
	"strings"

	"github.com/gwu-libraries/wasync/errors"
)

// ErrDatabaseClosed is returned when the history database was closed
// before a run finished recording, typically after an interrupt.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed reports whether err is ErrDatabaseClosed or a raw driver
// error for a closed connection. The driver's errors cannot be wrapped at the
// source, so its message is matched as a fallback.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}
