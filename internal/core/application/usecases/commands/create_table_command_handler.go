package commands

import (
	"context"

	"restaurant/internal/core/domain/model/table"
)

// CreateTableCommandHandler persists a new Available table. A duplicate table number
// surfaces as errs.ErrConflict from the repository.
type CreateTableCommandHandler struct {
	uowFactory TableUoWFactory
}

func NewCreateTableCommandHandler(uowFactory TableUoWFactory) CreateTableCommandHandler {
	return CreateTableCommandHandler{uowFactory: uowFactory}
}

func (h CreateTableCommandHandler) Handle(ctx context.Context, command CreateTableCommand) (*table.Table, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	t, err := table.NewTable(command.TableID(), command.Number(), command.Capacity())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TableRepository().Add(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
