package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for DishStatus.
const (
	DishStatusOrder    DishStatus = "order"
	DishStatusPrepare  DishStatus = "prepare"
	DishStatusPrepared DishStatus = "prepared"
)

// Defines values for OrderStatus.
const (
	OrderStatusOrder    OrderStatus = "order"
	OrderStatusPrepared OrderStatus = "prepared"
	OrderStatusServed   OrderStatus = "served"
)

// Defines values for PaymentMethod.
const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

// Defines values for TableStatus.
const (
	TableStatusAssigned  TableStatus = "assigned"
	TableStatusAvailable TableStatus = "available"
)

// AssignTable defines model for AssignTable.
type AssignTable struct {
	WaiterId openapi_types.UUID `json:"waiter_id"`
}

// ClaimDish defines model for ClaimDish.
type ClaimDish struct {
	KitchenId openapi_types.UUID `json:"kitchen_id"`
}

// Dish defines model for Dish.
type Dish struct {
	Id        openapi_types.UUID  `json:"id"`
	ItemId    openapi_types.UUID  `json:"item_id"`
	KitchenId *openapi_types.UUID `json:"kitchen_id,omitempty"`
	LineTotal int64               `json:"line_total"`
	Name      string              `json:"name"`
	Quantity  int                 `json:"quantity"`
	Status    DishStatus          `json:"status"`
	UnitPrice int64               `json:"unit_price"`
}

// DishStatus defines model for Dish.Status.
type DishStatus string

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewDish defines model for NewDish.
type NewDish struct {
	ItemId   openapi_types.UUID `json:"item_id"`
	Quantity int                `json:"quantity"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Dishes   []NewDish          `json:"dishes"`
	TableId  openapi_types.UUID `json:"table_id"`
	WaiterId openapi_types.UUID `json:"waiter_id"`
}

// NewTable defines model for NewTable.
type NewTable struct {
	Capacity int `json:"capacity"`
	Number   int `json:"number"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt time.Time           `json:"created_at"`
	Dishes    []Dish              `json:"dishes"`
	Id        openapi_types.UUID  `json:"id"`
	KitchenId *openapi_types.UUID `json:"kitchen_id,omitempty"`
	Status    OrderStatus         `json:"status"`
	TableId   openapi_types.UUID  `json:"table_id"`
	Total     int64               `json:"total"`
	UpdatedAt time.Time           `json:"updated_at"`
	WaiterId  openapi_types.UUID  `json:"waiter_id"`
}

// OrderStatus defines model for Order.Status.
type OrderStatus string

// PaymentMethod defines model for PaymentRequest.Method.
type PaymentMethod string

// PaymentRequest defines model for PaymentRequest.
type PaymentRequest struct {
	Method PaymentMethod `json:"method"`
}

// Settlement defines model for Settlement.
type Settlement struct {
	Amount    int64              `json:"amount"`
	Method    PaymentMethod      `json:"method"`
	Order     Order              `json:"order"`
	OrderId   openapi_types.UUID `json:"order_id"`
	PaidAt    time.Time          `json:"paid_at"`
	PaymentId openapi_types.UUID `json:"payment_id"`
	TableId   openapi_types.UUID `json:"table_id"`
}

// Table defines model for Table.
type Table struct {
	Capacity int                 `json:"capacity"`
	Id       openapi_types.UUID  `json:"id"`
	Number   int                 `json:"number"`
	Status   TableStatus         `json:"status"`
	WaiterId *openapi_types.UUID `json:"waiter_id,omitempty"`
}

// TableStatus defines model for Table.Status.
type TableStatus string

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// DishId defines model for DishId.
type DishId = openapi_types.UUID

// TableId defines model for TableId.
type TableId = openapi_types.UUID

// WaiterId defines model for WaiterId.
type WaiterId = openapi_types.UUID

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// ClaimDishJSONRequestBody defines body for ClaimDish for application/json ContentType.
type ClaimDishJSONRequestBody = ClaimDish

// SettlePaymentJSONRequestBody defines body for SettlePayment for application/json ContentType.
type SettlePaymentJSONRequestBody = PaymentRequest

// CreateTableJSONRequestBody defines body for CreateTable for application/json ContentType.
type CreateTableJSONRequestBody = NewTable

// AssignTableJSONRequestBody defines body for AssignTable for application/json ContentType.
type AssignTableJSONRequestBody = AssignTable
