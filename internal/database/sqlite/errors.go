package sqlite

import (
	"context"
	"database/sql"
	"errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Drasnov/mtga-reader/internal/errs"
)

// mapError translates driver-native errors into *errs.Error.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	// Context cancellation / deadline exceeded
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	// No rows
	if errors.Is(err, sql.ErrNoRows) {
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	}

	// SQLite result codes. The low byte is the primary code; extended
	// codes such as SQLITE_CANTOPEN_NOTEMPDIR keep it in place.
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB:
			return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
		case sqlite3.SQLITE_PERM, sqlite3.SQLITE_AUTH, sqlite3.SQLITE_READONLY:
			return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
		default:
			return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
		}
	}

	// Fallthrough: open-level failures (missing file, not a database)
	// surface here without a typed code on some paths.
	return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
}
