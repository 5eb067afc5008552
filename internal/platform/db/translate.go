package db

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"incrementum/internal/shared/apperr"
)

// Postgres SQLSTATE classes the adapters care about. gorm's TranslateError
// covers the common cases on both drivers; the SQLSTATE branch catches what
// translation misses (e.g. raw Exec paths).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Translate maps a storage error onto the apperr kinds. Duplicate keys become
// conflicts, missing rows and broken references become not-found, connection
// and timeout failures become unavailable. Anything else is returned as-is so
// unexpected failures stay loud.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflictf("%v", err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFoundf("%v", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.NotFoundf("referenced row missing: %v", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperr.Conflictf("%s", pgErr.Detail)
		case pgForeignKeyViolation:
			return apperr.NotFoundf("referenced row missing: %s", pgErr.Detail)
		}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperr.Unavailablef("%v", err)
	}

	return err
}
