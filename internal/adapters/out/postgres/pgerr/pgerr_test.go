package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"restaurant/internal/adapters/out/postgres/pgerr"
	"restaurant/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	violation := &pgconn.PgError{Code: pgerr.UniqueViolation, ConstraintName: "idx_tables_number"}

	assert.True(t, pgerr.IsUniqueViolation(violation, ""))
	assert.True(t, pgerr.IsUniqueViolation(fmt.Errorf("insert: %w", violation), "idx_tables_number"))
	assert.False(t, pgerr.IsUniqueViolation(violation, "uq_tables_assigned_waiter"))
	assert.False(t, pgerr.IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, pgerr.IsUniqueViolation(errors.New("boom"), ""))
}

func TestStorage(t *testing.T) {
	assert.NoError(t, pgerr.Storage("get order", nil))

	notFound := errs.NewObjectNotFoundError("order", "42")
	assert.Same(t, notFound, pgerr.Storage("get order", notFound))

	err := pgerr.Storage("get order", errors.New("connection reset"))
	assert.ErrorIs(t, err, errs.ErrStorage)
	assert.Contains(t, err.Error(), "get order")
}
