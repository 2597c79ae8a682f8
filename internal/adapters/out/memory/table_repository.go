package memory

import (
	"context"
	"fmt"
	"slices"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"
)

// TableRepository implements ports.TableRepository over the store state. It enforces
// the same constraints the postgres schema does: unique table numbers, one Assigned
// table per waiter and version-guarded updates.
type TableRepository struct {
	repo
}

func (r *TableRepository) Add(ctx context.Context, t *table.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	rec := tableFromDomain(t)
	return r.with(ctx, func(st *state) error {
		if _, exists := st.tables[rec.id]; exists {
			return errs.NewConflictError("table", rec.id.String(), "already exists")
		}
		for _, other := range st.tables {
			if other.number == rec.number {
				return errs.NewConflictError("table", rec.id.String(), fmt.Sprintf("number %d is taken", rec.number))
			}
		}
		st.tables[rec.id] = rec
		return nil
	})
}

func (r *TableRepository) Get(ctx context.Context, id kernel.UUID) (*table.Table, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var out *table.Table
	err := r.with(ctx, func(st *state) error {
		rec, ok := st.tables[id]
		if !ok {
			return errs.NewObjectNotFoundError("table", id.String())
		}
		t, err := tableToDomain(rec)
		out = t
		return err
	})
	return out, err
}

func (r *TableRepository) GetAll(ctx context.Context) ([]*table.Table, error) {
	var recs []tableRecord
	err := r.with(ctx, func(st *state) error {
		for _, rec := range st.tables {
			recs = append(recs, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(recs, func(a, b tableRecord) int { return a.number - b.number })

	tables := make([]*table.Table, 0, len(recs))
	for _, rec := range recs {
		t, err := tableToDomain(rec)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (r *TableRepository) GetAssignedToWaiter(ctx context.Context, waiterID kernel.UUID) (*table.Table, error) {
	var out *table.Table
	err := r.with(ctx, func(st *state) error {
		for _, rec := range st.tables {
			if rec.status == table.Assigned && rec.waiterID != nil && rec.waiterID.IsEqual(waiterID) {
				t, err := tableToDomain(rec)
				out = t
				return err
			}
		}
		return errs.NewObjectNotFoundError("assigned table of waiter", waiterID.String())
	})
	return out, err
}

func (r *TableRepository) Update(ctx context.Context, t *table.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	rec := tableFromDomain(t)
	return r.with(ctx, func(st *state) error {
		stored, ok := st.tables[rec.id]
		if !ok {
			return errs.NewObjectNotFoundError("table", rec.id.String())
		}
		if stored.version != rec.version {
			return errs.NewConflictError("table", rec.id.String(), "modified concurrently")
		}
		if rec.status == table.Assigned {
			for id, other := range st.tables {
				if id != rec.id && other.status == table.Assigned && other.waiterID.IsEqual(*rec.waiterID) {
					return errs.NewConflictError("waiter", rec.waiterID.String(), fmt.Sprintf("already assigned to table %d", other.number))
				}
			}
		}

		rec.version = stored.version + 1
		st.tables[rec.id] = rec
		return nil
	})
}

func tableFromDomain(t *table.Table) tableRecord {
	return tableRecord{
		id:       t.ID(),
		number:   t.Number(),
		capacity: t.Capacity(),
		status:   t.Status(),
		waiterID: t.WaiterID(),
		version:  t.Version(),
	}
}

func tableToDomain(rec tableRecord) (*table.Table, error) {
	return table.RestoreTable(rec.id, rec.number, rec.capacity, rec.status, rec.waiterID, rec.version)
}
