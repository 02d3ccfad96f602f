package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		assert.ErrorIs(t, translate(pgx.ErrNoRows, "profiles"), ErrNotFound)
	})

	t.Run("missing function becomes unsupported", func(t *testing.T) {
		src := &pgconn.PgError{Code: "42883", Message: "function universities_by_city(uuid) does not exist"}
		err := translate(fmt.Errorf("query: %w", src), "universities_by_city")

		var unsupported *UnsupportedError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, "universities_by_city", unsupported.Object)
		assert.True(t, unsupported.Unsupported())
		assert.ErrorIs(t, err, src)
	})

	t.Run("missing table becomes unsupported", func(t *testing.T) {
		var unsupported *UnsupportedError
		assert.True(t, errors.As(translate(&pgconn.PgError{Code: "42P01"}, "saved_items"), &unsupported))
	})

	t.Run("unique violation", func(t *testing.T) {
		err := translate(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, "users")
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		src := &pgconn.PgError{Code: "42501", Message: "permission denied"}
		err := translate(src, "profiles")
		assert.Same(t, src, err)
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, translate(nil, "x"))
	})
}
