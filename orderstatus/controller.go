package orderstatus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"event-portal/models"
)

var (
	ErrUnknownOrder   = errors.New("order is not tracked")
	ErrNoTransition   = errors.New("no transition is offered from this status")
	ErrNotCancellable = errors.New("only pending orders can be cancelled")
	// ErrSuperseded is returned for a response that arrived after a newer
	// request for the same order was issued. The response is not applied.
	ErrSuperseded = errors.New("a newer status request superseded this one")
)

// OrderService applies status changes. api.Client satisfies it.
type OrderService interface {
	UpdateOrderStatus(ctx context.Context, token string, id int, status models.OrderStatus) (*models.Order, error)
	CancelOrder(ctx context.Context, token string, id int) (*models.Order, error)
}

// NotifyFunc is called after a change the platform confirmed was applied.
type NotifyFunc func(order models.Order, from models.OrderStatus)

// TransitionError annotates a failed request with the transition attempted.
type TransitionError struct {
	OrderID int
	From    models.OrderStatus
	To      models.OrderStatus
	Err     error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order %d: %s -> %s: %v", e.OrderID, e.From, e.To, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// Controller holds the confirmed status of the orders one session is viewing.
// It never advances a status on its own; only the service's answer does.
type Controller struct {
	svc    OrderService
	notify NotifyFunc

	mu     sync.Mutex
	orders map[int]models.Order
	issued map[int]uint64
}

func NewController(svc OrderService, notify NotifyFunc) *Controller {
	return &Controller{
		svc:    svc,
		notify: notify,
		orders: make(map[int]models.Order),
		issued: make(map[int]uint64),
	}
}

// Track mirrors an order read from the platform into view state.
func (c *Controller) Track(order models.Order) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders[order.ID] = order
	return ViewOf(order)
}

func (c *Controller) Get(orderID int) (View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	order, ok := c.orders[orderID]
	if !ok {
		return View{}, false
	}
	return ViewOf(order), true
}

// Advance requests the next forward transition for the order.
func (c *Controller) Advance(ctx context.Context, token string, orderID int) (View, error) {
	c.mu.Lock()
	order, ok := c.orders[orderID]
	if !ok {
		c.mu.Unlock()
		return View{}, ErrUnknownOrder
	}
	action, ok := NextAction(order.Status)
	if !ok {
		c.mu.Unlock()
		return ViewOf(order), &TransitionError{OrderID: orderID, From: order.Status, Err: ErrNoTransition}
	}
	seq := c.begin(orderID)
	c.mu.Unlock()

	updated, err := c.svc.UpdateOrderStatus(ctx, token, orderID, action.Target)
	return c.settle(orderID, seq, order.Status, action.Target, updated, err)
}

// Cancel requests cancellation; it is only offered while the order is pending.
func (c *Controller) Cancel(ctx context.Context, token string, orderID int) (View, error) {
	c.mu.Lock()
	order, ok := c.orders[orderID]
	if !ok {
		c.mu.Unlock()
		return View{}, ErrUnknownOrder
	}
	if !CanCancel(order.Status) {
		c.mu.Unlock()
		return ViewOf(order), &TransitionError{OrderID: orderID, From: order.Status, To: models.StatusCancelled, Err: ErrNotCancellable}
	}
	seq := c.begin(orderID)
	c.mu.Unlock()

	updated, err := c.svc.CancelOrder(ctx, token, orderID)
	return c.settle(orderID, seq, order.Status, models.StatusCancelled, updated, err)
}

// begin issues the next request number for the order. Caller holds mu.
func (c *Controller) begin(orderID int) uint64 {
	c.issued[orderID]++
	return c.issued[orderID]
}

func (c *Controller) settle(orderID int, seq uint64, from, to models.OrderStatus, updated *models.Order, err error) (View, error) {
	c.mu.Lock()
	current := c.orders[orderID]
	if c.issued[orderID] != seq {
		c.mu.Unlock()
		return ViewOf(current), &TransitionError{OrderID: orderID, From: from, To: to, Err: ErrSuperseded}
	}
	if err != nil {
		c.mu.Unlock()
		return ViewOf(current), &TransitionError{OrderID: orderID, From: from, To: to, Err: err}
	}

	confirmed := current
	if updated != nil && updated.ID == orderID {
		confirmed = *updated
	}
	// some platform versions acknowledge without echoing the order
	confirmed.Status = to
	if updated != nil && updated.Status != "" {
		confirmed.Status = updated.Status
	}
	previous := current.Status
	c.orders[orderID] = confirmed
	c.mu.Unlock()

	if c.notify != nil && previous != confirmed.Status {
		c.notify(confirmed, previous)
	}
	return ViewOf(confirmed), nil
}
