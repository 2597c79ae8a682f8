package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List every order
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context) error

	// Place an order for a table held by the waiter
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error

	// List orders that are not served yet
	// (GET /api/v1/orders/open)
	ListOpenOrders(ctx echo.Context) error

	// Get one order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error

	// A kitchen actor claims a dish
	// (POST /api/v1/orders/{orderId}/dishes/{dishId}/claim)
	ClaimDish(ctx echo.Context, orderId OrderId, dishId DishId) error

	// Mark a claimed dish as prepared
	// (POST /api/v1/orders/{orderId}/dishes/{dishId}/complete)
	CompleteDish(ctx echo.Context, orderId OrderId, dishId DishId) error

	// Mark a prepared order as served
	// (POST /api/v1/orders/{orderId}/serve)
	ServeOrder(ctx echo.Context, orderId OrderId) error

	// Settle a served order and release its table
	// (POST /api/v1/orders/{orderId}/payment)
	SettlePayment(ctx echo.Context, orderId OrderId) error

	// List tables ordered by number
	// (GET /api/v1/tables)
	ListTables(ctx echo.Context) error

	// Add a table to the dining room
	// (POST /api/v1/tables)
	CreateTable(ctx echo.Context) error

	// Bind an available table to a waiter
	// (POST /api/v1/tables/{tableId}/assign)
	AssignTable(ctx echo.Context, tableId TableId) error

	// Release a table; releasing an available table is a no-op
	// (POST /api/v1/tables/{tableId}/release)
	ReleaseTable(ctx echo.Context, tableId TableId) error

	// List the waiter's orders that are not served yet
	// (GET /api/v1/waiters/{waiterId}/orders)
	ListWaiterOrders(ctx echo.Context, waiterId WaiterId) error

	// List the waiter's orders for a table that still wait for the kitchen
	// (GET /api/v1/waiters/{waiterId}/tables/{tableId}/orders)
	ListWaiterTableOrders(ctx echo.Context, waiterId WaiterId, tableId TableId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var err error
	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ListOrders(ctx)
	return err
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var err error
	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CreateOrder(ctx)
	return err
}

// ListOpenOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOpenOrders(ctx echo.Context) error {
	var err error
	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ListOpenOrders(ctx)
	return err
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetOrder(ctx, orderId)
	return err
}

// ClaimDish converts echo context to params.
func (w *ServerInterfaceWrapper) ClaimDish(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// ------------- Path parameter "dishId" -------------
	var dishId DishId

	err = runtime.BindStyledParameterWithOptions("simple", "dishId", ctx.Param("dishId"), &dishId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter dishId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ClaimDish(ctx, orderId, dishId)
	return err
}

// CompleteDish converts echo context to params.
func (w *ServerInterfaceWrapper) CompleteDish(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// ------------- Path parameter "dishId" -------------
	var dishId DishId

	err = runtime.BindStyledParameterWithOptions("simple", "dishId", ctx.Param("dishId"), &dishId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter dishId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CompleteDish(ctx, orderId, dishId)
	return err
}

// ServeOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ServeOrder(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ServeOrder(ctx, orderId)
	return err
}

// SettlePayment converts echo context to params.
func (w *ServerInterfaceWrapper) SettlePayment(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.SettlePayment(ctx, orderId)
	return err
}

// ListTables converts echo context to params.
func (w *ServerInterfaceWrapper) ListTables(ctx echo.Context) error {
	var err error
	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ListTables(ctx)
	return err
}

// CreateTable converts echo context to params.
func (w *ServerInterfaceWrapper) CreateTable(ctx echo.Context) error {
	var err error
	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CreateTable(ctx)
	return err
}

// AssignTable converts echo context to params.
func (w *ServerInterfaceWrapper) AssignTable(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "tableId" -------------
	var tableId TableId

	err = runtime.BindStyledParameterWithOptions("simple", "tableId", ctx.Param("tableId"), &tableId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter tableId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.AssignTable(ctx, tableId)
	return err
}

// ReleaseTable converts echo context to params.
func (w *ServerInterfaceWrapper) ReleaseTable(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "tableId" -------------
	var tableId TableId

	err = runtime.BindStyledParameterWithOptions("simple", "tableId", ctx.Param("tableId"), &tableId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter tableId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ReleaseTable(ctx, tableId)
	return err
}

// ListWaiterOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListWaiterOrders(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "waiterId" -------------
	var waiterId WaiterId

	err = runtime.BindStyledParameterWithOptions("simple", "waiterId", ctx.Param("waiterId"), &waiterId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter waiterId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ListWaiterOrders(ctx, waiterId)
	return err
}

// ListWaiterTableOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListWaiterTableOrders(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "waiterId" -------------
	var waiterId WaiterId

	err = runtime.BindStyledParameterWithOptions("simple", "waiterId", ctx.Param("waiterId"), &waiterId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter waiterId: %s", err))
	}

	// ------------- Path parameter "tableId" -------------
	var tableId TableId

	err = runtime.BindStyledParameterWithOptions("simple", "tableId", ctx.Param("tableId"), &tableId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter tableId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ListWaiterTableOrders(ctx, waiterId, tableId)
	return err
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths,
// so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/open", wrapper.ListOpenOrders)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/dishes/:dishId/claim", wrapper.ClaimDish)
	router.POST(baseURL+"/api/v1/orders/:orderId/dishes/:dishId/complete", wrapper.CompleteDish)
	router.POST(baseURL+"/api/v1/orders/:orderId/serve", wrapper.ServeOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/payment", wrapper.SettlePayment)
	router.GET(baseURL+"/api/v1/tables", wrapper.ListTables)
	router.POST(baseURL+"/api/v1/tables", wrapper.CreateTable)
	router.POST(baseURL+"/api/v1/tables/:tableId/assign", wrapper.AssignTable)
	router.POST(baseURL+"/api/v1/tables/:tableId/release", wrapper.ReleaseTable)
	router.GET(baseURL+"/api/v1/waiters/:waiterId/orders", wrapper.ListWaiterOrders)
	router.GET(baseURL+"/api/v1/waiters/:waiterId/tables/:tableId/orders", wrapper.ListWaiterTableOrders)
}
