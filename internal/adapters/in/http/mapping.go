package http

import (
	"errors"
	"net/http"
	"strings"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/generated/servers"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// statusOf maps the domain error kinds to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusOf(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		message = "Internal server error"
	}
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: message})
}

func (s *Server) renderOrder(ctx echo.Context, code int, o *order.Order) error {
	return ctx.JSON(code, orderResponse(s.viewer.View(ctx.Request().Context(), o)))
}

func toKernel(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toKernelAll(ids ...openapi_types.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		k, err := toKernel(id)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

func optionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func orderResponse(v queries.OrderView) servers.Order {
	dishes := make([]servers.Dish, 0, len(v.Dishes))
	for _, d := range v.Dishes {
		dishes = append(dishes, servers.Dish{
			Id:        d.ID.Bytes(),
			ItemId:    d.ItemID.Bytes(),
			Name:      d.Name,
			Quantity:  d.Quantity,
			Status:    servers.DishStatus(d.Status.String()),
			KitchenId: optionalID(d.KitchenID),
			UnitPrice: int64(d.UnitPrice),
			LineTotal: int64(d.LineTotal),
		})
	}

	return servers.Order{
		Id:        v.ID.Bytes(),
		TableId:   v.TableID.Bytes(),
		WaiterId:  v.WaiterID.Bytes(),
		KitchenId: optionalID(v.KitchenID),
		Status:    servers.OrderStatus(v.Status.String()),
		Dishes:    dishes,
		Total:     int64(v.Total),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func tableResponse(v queries.TableView) servers.Table {
	return servers.Table{
		Id:       v.ID.Bytes(),
		Number:   v.Number,
		Capacity: v.Capacity,
		Status:   servers.TableStatus(strings.ToLower(v.Status.String())),
		WaiterId: optionalID(v.WaiterID),
	}
}
