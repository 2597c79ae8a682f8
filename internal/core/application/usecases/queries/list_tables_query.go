package queries

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/guard"
)

var ErrListTablesQueryIsNotConstructed = errors.New(
	"ListTablesQuery must be created via NewListTablesQuery constructor",
)

// TableReader is the read side of ports.TableRepository.
type TableReader interface {
	GetAll(ctx context.Context) ([]*table.Table, error)
}

// ListTablesQuery lists the dining room with current bindings.
type ListTablesQuery struct {
	guard guard.ConstructorGuard
}

func NewListTablesQuery() ListTablesQuery {
	return ListTablesQuery{guard: guard.NewConstructorGuard()}
}

func (q ListTablesQuery) Validate() error {
	return q.guard.Validate(ErrListTablesQueryIsNotConstructed)
}

// TableView is a table with its binding.
type TableView struct {
	ID       kernel.UUID
	Number   int
	Capacity int
	Status   table.Status
	WaiterID *kernel.UUID
}

// NewTableView projects a table aggregate.
func NewTableView(t *table.Table) TableView {
	return TableView{
		ID:       t.ID(),
		Number:   t.Number(),
		Capacity: t.Capacity(),
		Status:   t.Status(),
		WaiterID: t.WaiterID(),
	}
}

type ListTablesQueryHandler struct {
	tables TableReader
}

func NewListTablesQueryHandler(tables TableReader) ListTablesQueryHandler {
	return ListTablesQueryHandler{tables: tables}
}

func (h ListTablesQueryHandler) Handle(ctx context.Context, query ListTablesQuery) ([]TableView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tables, err := h.tables.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]TableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, NewTableView(t))
	}
	return views, nil
}
