// Package orderstatus decides which status change an operator may be offered
// for an order and mirrors the platform's confirmed status into view state.
package orderstatus

import "event-portal/models"

// Action is the single forward transition offered for a status.
type Action struct {
	Target models.OrderStatus `json:"target"`
	Label  string             `json:"label"`
}

var forward = map[models.OrderStatus]Action{
	models.StatusPending:   {Target: models.StatusPreparing, Label: "Start Preparing"},
	models.StatusPreparing: {Target: models.StatusReady, Label: "Mark as Ready"},
	models.StatusReady:     {Target: models.StatusCompleted, Label: "Complete Order"},
}

// NextAction returns the legal forward transition for status. Terminal and
// unknown statuses have none.
func NextAction(status models.OrderStatus) (Action, bool) {
	a, ok := forward[status]
	return a, ok
}

// CanCancel is true only for pending orders.
func CanCancel(status models.OrderStatus) bool {
	return status == models.StatusPending
}

func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusCompleted || status == models.StatusCancelled
}

func Valid(status models.OrderStatus) bool {
	switch status {
	case models.StatusPending, models.StatusPreparing, models.StatusReady, models.StatusCompleted, models.StatusCancelled:
		return true
	}
	return false
}

// View is an order together with the choices rendered for it.
type View struct {
	Order     models.Order `json:"order"`
	Next      *Action      `json:"next_action"`
	CanCancel bool         `json:"can_cancel"`
	Terminal  bool         `json:"terminal"`
}

func ViewOf(order models.Order) View {
	v := View{Order: order, CanCancel: CanCancel(order.Status), Terminal: IsTerminal(order.Status)}
	if a, ok := NextAction(order.Status); ok {
		v.Next = &a
	}
	return v
}
