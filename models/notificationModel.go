package models

import "time"

// StatusNotification is pushed to a session's websocket connections once the
// platform has confirmed an order status change.
type StatusNotification struct {
	Event     string      `json:"event"`
	OrderID   int         `json:"order_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
	Timestamp time.Time   `json:"timestamp"`
}
