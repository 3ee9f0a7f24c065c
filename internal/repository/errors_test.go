package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	require.NoError(t, classify(nil))

	// gorm sentinels pass through so services keep matching on them
	require.ErrorIs(t, classify(gorm.ErrRecordNotFound), gorm.ErrRecordNotFound)
	require.ErrorIs(t, classify(gorm.ErrDuplicatedKey), gorm.ErrDuplicatedKey)

	// too_many_connections is retryable overload
	err := classify(&pgconn.PgError{Code: "53300"})
	require.ErrorIs(t, err, ErrOverloaded)

	// connection exceptions count as overload too
	err = classify(&pgconn.PgError{Code: "08006"})
	require.ErrorIs(t, err, ErrOverloaded)

	// constraint violations are integrity errors
	err = classify(&pgconn.PgError{Code: "23503"})
	require.ErrorIs(t, err, ErrIntegrity)

	// anything else is passed through unchanged
	plain := errors.New("boom")
	require.Equal(t, plain, classify(plain))
}
