package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	StallID     int             `json:"stall_id"`
	Status      OrderStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []OrderItem     `json:"items"`
}

type OrderItem struct {
	ID       int             `json:"id"`
	ItemID   int             `json:"item_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// OrderItemInput is one line of the order-creation payload.
type OrderItemInput struct {
	ItemID   int `json:"item_id" validate:"required,gt=0"`
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	StallID int              `json:"stall_id" validate:"required,gt=0"`
	Items   []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type ListOrdersParams struct {
	Skip   int         `form:"skip" validate:"gte=0"`
	Limit  int         `form:"limit" validate:"gte=0,lte=100"`
	Status OrderStatus `form:"status"`
}
