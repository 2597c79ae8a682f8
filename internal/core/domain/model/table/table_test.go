package table_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	t.Run("should create available table", func(t *testing.T) {
		tbl, err := table.NewTable(kernel.NewUUID(), 7, 4)

		require.NoError(t, err)
		require.NoError(t, tbl.Validate())
		assert.Equal(t, 7, tbl.Number())
		assert.Equal(t, 4, tbl.Capacity())
		assert.Equal(t, table.Available, tbl.Status())
		assert.Nil(t, tbl.WaiterID())
		assert.Equal(t, int64(1), tbl.Version())
	})

	t.Run("should validate number and capacity", func(t *testing.T) {
		_, err := table.NewTable(kernel.NewUUID(), 0, 0)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "number")
	})
}

func TestTable_Assign(t *testing.T) {
	t.Run("binds waiter", func(t *testing.T) {
		tbl, _ := table.NewTable(kernel.NewUUID(), 1, 2)
		waiterID := kernel.NewUUID()

		require.NoError(t, tbl.Assign(waiterID))

		assert.Equal(t, table.Assigned, tbl.Status())
		assert.True(t, tbl.WaiterID().IsEqual(waiterID))
		assert.True(t, tbl.IsAssignedTo(waiterID))
	})

	t.Run("rejects assigned table with conflict", func(t *testing.T) {
		tbl, _ := table.NewTable(kernel.NewUUID(), 1, 2)
		first := kernel.NewUUID()
		require.NoError(t, tbl.Assign(first))

		err := tbl.Assign(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.True(t, tbl.IsAssignedTo(first))
	})

	t.Run("requires waiter", func(t *testing.T) {
		tbl, _ := table.NewTable(kernel.NewUUID(), 1, 2)
		var missing kernel.UUID

		require.ErrorIs(t, tbl.Assign(missing), errs.ErrValueIsRequired)
		assert.Equal(t, table.Available, tbl.Status())
	})
}

func TestTable_Release(t *testing.T) {
	tbl, _ := table.NewTable(kernel.NewUUID(), 1, 2)
	require.NoError(t, tbl.Assign(kernel.NewUUID()))

	assert.True(t, tbl.Release())
	assert.Equal(t, table.Available, tbl.Status())
	assert.Nil(t, tbl.WaiterID())

	assert.False(t, tbl.Release(), "releasing an available table is a no-op")
}

func TestRestoreTable(t *testing.T) {
	waiterID := kernel.NewUUID()

	tbl, err := table.RestoreTable(kernel.NewUUID(), 3, 6, table.Assigned, &waiterID, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), tbl.Version())
	assert.True(t, tbl.IsAssignedTo(waiterID))

	_, err = table.RestoreTable(kernel.NewUUID(), 3, 6, table.Assigned, nil, 1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = table.RestoreTable(kernel.NewUUID(), 3, 6, table.Available, &waiterID, 1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = table.RestoreTable(kernel.NewUUID(), 3, 6, table.Unknown, nil, 1)
	require.Error(t, err)
}
