package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder   commands.CreateOrderCommandHandler
	ClaimDish     commands.AssignDishToKitchenCommandHandler
	CompleteDish  commands.MarkDishPreparedCommandHandler
	ServeOrder    commands.MarkOrderServedCommandHandler
	SettlePayment commands.SettlePaymentCommandHandler
	CreateTable   commands.CreateTableCommandHandler
	AssignTable   commands.AssignTableCommandHandler
	ReleaseTable  commands.ReleaseTableCommandHandler

	GetOrder   queries.GetOrderQueryHandler
	ListOrders queries.ListOrdersQueryHandler
	ListTables queries.ListTablesQueryHandler
}

// Server implements servers.ServerInterface on top of the command and query handlers.
type Server struct {
	h      Handlers
	viewer queries.OrderViewer
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates the HTTP server. The catalog resolves dish names and prices in
// order responses.
func NewServer(handlers Handlers, catalog ports.Catalog) *Server {
	return &Server{
		h:      handlers,
		viewer: queries.NewOrderViewer(catalog),
	}
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	return s.listOrders(ctx, queries.NewListAllOrdersQuery())
}

// ListOpenOrders handles GET /api/v1/orders/open.
func (s *Server) ListOpenOrders(ctx echo.Context) error {
	return s.listOrders(ctx, queries.NewListOpenOrdersQuery())
}

// ListWaiterOrders handles GET /api/v1/waiters/{waiterId}/orders.
func (s *Server) ListWaiterOrders(ctx echo.Context, waiterId servers.WaiterId) error {
	waiterID, err := toKernel(waiterId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListWaiterOrdersQuery(waiterID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.listOrders(ctx, query)
}

// ListWaiterTableOrders handles GET /api/v1/waiters/{waiterId}/tables/{tableId}/orders.
func (s *Server) ListWaiterTableOrders(ctx echo.Context, waiterId servers.WaiterId, tableId servers.TableId) error {
	waiterID, err := toKernel(waiterId)
	if err != nil {
		return s.fail(ctx, err)
	}
	tableID, err := toKernel(tableId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListWaiterTableOrdersQuery(waiterID, tableID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.listOrders(ctx, query)
}

func (s *Server) listOrders(ctx echo.Context, query queries.ListOrdersQuery) error {
	views, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Order, 0, len(views))
	for _, v := range views {
		response = append(response, orderResponse(v))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	orderID, err := toKernel(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderResponse(view))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	tableID, err := toKernel(body.TableId)
	if err != nil {
		return s.fail(ctx, err)
	}
	waiterID, err := toKernel(body.WaiterId)
	if err != nil {
		return s.fail(ctx, err)
	}

	lines := make([]commands.DishLine, 0, len(body.Dishes))
	for _, d := range body.Dishes {
		itemID, itemErr := toKernel(d.ItemId)
		if itemErr != nil {
			return s.fail(ctx, itemErr)
		}
		lines = append(lines, commands.DishLine{ItemID: itemID, Quantity: d.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), tableID, waiterID, lines)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.renderOrder(ctx, http.StatusCreated, o)
}

// ClaimDish handles POST /api/v1/orders/{orderId}/dishes/{dishId}/claim.
func (s *Server) ClaimDish(ctx echo.Context, orderId servers.OrderId, dishId servers.DishId) error {
	var body servers.ClaimDishJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	ids, err := toKernelAll(orderId, dishId, body.KitchenId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAssignDishToKitchenCommand(ids[0], ids[1], ids[2])
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.h.ClaimDish.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.renderOrder(ctx, http.StatusOK, o)
}

// CompleteDish handles POST /api/v1/orders/{orderId}/dishes/{dishId}/complete.
func (s *Server) CompleteDish(ctx echo.Context, orderId servers.OrderId, dishId servers.DishId) error {
	ids, err := toKernelAll(orderId, dishId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewMarkDishPreparedCommand(ids[0], ids[1])
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.h.CompleteDish.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.renderOrder(ctx, http.StatusOK, o)
}

// ServeOrder handles POST /api/v1/orders/{orderId}/serve.
func (s *Server) ServeOrder(ctx echo.Context, orderId servers.OrderId) error {
	orderID, err := toKernel(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewMarkOrderServedCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.h.ServeOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.renderOrder(ctx, http.StatusOK, o)
}

// SettlePayment handles POST /api/v1/orders/{orderId}/payment.
func (s *Server) SettlePayment(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.SettlePaymentJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	orderID, err := toKernel(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSettlePaymentCommand(orderID, string(body.Method))
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.SettlePayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	view := s.viewer.View(ctx.Request().Context(), result.Order)

	p := result.Payment
	return ctx.JSON(http.StatusCreated, servers.Settlement{
		PaymentId: p.ID().Bytes(),
		OrderId:   p.OrderID().Bytes(),
		TableId:   p.TableID().Bytes(),
		Amount:    int64(p.Amount()),
		Method:    servers.PaymentMethod(p.Method().String()),
		PaidAt:    p.PaidAt(),
		Order:     orderResponse(view),
	})
}

// ListTables handles GET /api/v1/tables.
func (s *Server) ListTables(ctx echo.Context) error {
	views, err := s.h.ListTables.Handle(ctx.Request().Context(), queries.NewListTablesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Table, 0, len(views))
	for _, v := range views {
		response = append(response, tableResponse(v))
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateTable handles POST /api/v1/tables.
func (s *Server) CreateTable(ctx echo.Context) error {
	var body servers.CreateTableJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateTableCommand(kernel.NewUUID(), body.Number, body.Capacity)
	if err != nil {
		return s.fail(ctx, err)
	}

	t, err := s.h.CreateTable.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, tableResponse(queries.NewTableView(t)))
}

// AssignTable handles POST /api/v1/tables/{tableId}/assign.
func (s *Server) AssignTable(ctx echo.Context, tableId servers.TableId) error {
	var body servers.AssignTableJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	ids, err := toKernelAll(tableId, body.WaiterId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAssignTableCommand(ids[0], ids[1])
	if err != nil {
		return s.fail(ctx, err)
	}

	t, err := s.h.AssignTable.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, tableResponse(queries.NewTableView(t)))
}

// ReleaseTable handles POST /api/v1/tables/{tableId}/release.
func (s *Server) ReleaseTable(ctx echo.Context, tableId servers.TableId) error {
	tableID, err := toKernel(tableId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewReleaseTableCommand(tableID)
	if err != nil {
		return s.fail(ctx, err)
	}

	t, err := s.h.ReleaseTable.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, tableResponse(queries.NewTableView(t)))
}
