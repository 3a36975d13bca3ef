package postgres

import (
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// dbError marks a driver error, turning unique violations into ErrAlreadyExists
func dbError(err error, hint string) error {
	var pqErr *pq.Error
	if ierr.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return ierr.WithError(err).
			WithHint(hint).
			WithReportableDetails(map[string]any{
				"constraint": pqErr.Constraint,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	return ierr.WithError(err).
		WithHint(hint).
		Mark(ierr.ErrDatabase)
}

func notFound(entity string, id string) error {
	return ierr.NewErrorf("%s %s not found", entity, id).
		WithHintf("%s not found", entity).
		WithReportableDetails(map[string]any{
			"id": id,
		}).
		Mark(ierr.ErrNotFound)
}

// scanOne reads the first row into dest, reporting whether one existed
func scanOne(rows *sqlx.Rows, dest interface{}) (bool, error) {
	defer rows.Close()
	if !rows.Next() {
		return false, rows.Err()
	}
	if err := rows.StructScan(dest); err != nil {
		return false, err
	}
	return true, nil
}

// scanAll reads every row, allocating one T per row
func scanAll[T any](rows *sqlx.Rows) ([]*T, error) {
	defer rows.Close()
	var out []*T
	for rows.Next() {
		var v T
		if err := rows.StructScan(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}
