package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrOverloaded marks retryable datastore contention (connection
	// exhaustion, resource limits). Callers may retry; the repository
	// never retries internally.
	ErrOverloaded = errors.New("datastore overloaded")

	// ErrIntegrity marks a constraint violation. Not retryable.
	ErrIntegrity = errors.New("datastore integrity violation")
)

// Postgres error classes, per the SQLSTATE convention.
const (
	pgClassConnectionException   = "08"
	pgClassIntegrityViolation    = "23"
	pgClassInsufficientResources = "53"
)

// classify maps driver-level failures onto the repository error classes.
// gorm's translated sentinels (ErrRecordNotFound, ErrDuplicatedKey) pass
// through untouched so callers can keep matching on them.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 {
		switch pgErr.Code[:2] {
		case pgClassInsufficientResources, pgClassConnectionException:
			return fmt.Errorf("%w: %v", ErrOverloaded, err)
		case pgClassIntegrityViolation:
			return fmt.Errorf("%w: %v", ErrIntegrity, err)
		}
	}

	return err
}
