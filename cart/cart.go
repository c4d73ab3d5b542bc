// Package cart accumulates menu items picked during one ordering session and
// turns them into the order-creation payload. It never talks to the network.
package cart

import (
	"sync"

	"event-portal/models"

	"github.com/shopspring/decimal"
)

// Line is one distinct menu item in the cart.
type Line struct {
	Item     models.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
}

// Subtotal is unit price × quantity at two decimal places.
func (l Line) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
}

// Cart holds at most one line per item id, in the order items were first added.
type Cart struct {
	mu      sync.Mutex
	stallID int
	lines   []Line
}

func New(stallID int) *Cart {
	return &Cart{stallID: stallID}
}

func (c *Cart) StallID() int {
	return c.stallID
}

// AddItem increments the line for item, or appends a new line at quantity 1.
func (c *Cart) AddItem(item models.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(item.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

// SetQuantity removes the line when quantity is zero or less, otherwise sets
// it on the existing line. An id that is not in the cart is left alone: there
// is no item data to build a line from.
func (c *Cart) SetQuantity(itemID, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(itemID)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
	c.lines[i].Quantity = quantity
}

// Quantity returns the current quantity for itemID, 0 if absent.
func (c *Cart) Quantity(itemID int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(itemID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// LineSubtotal returns the subtotal shown next to one line, zero if absent.
func (c *Cart) LineSubtotal(itemID int) decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(itemID); i >= 0 {
		return c.lines[i].Subtotal()
	}
	return decimal.Zero
}

// Total is the sum of line subtotals, rounded to the cent.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}

// ToOrderPayload lists {item_id, quantity} for every line in insertion order.
func (c *Cart) ToOrderPayload() []models.OrderItemInput {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := make([]models.OrderItemInput, 0, len(c.lines))
	for _, l := range c.lines {
		if l.Quantity <= 0 {
			continue
		}
		payload = append(payload, models.OrderItemInput{ItemID: l.Item.ID, Quantity: l.Quantity})
	}
	return payload
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

func (c *Cart) find(itemID int) int {
	for i, l := range c.lines {
		if l.Item.ID == itemID {
			return i
		}
	}
	return -1
}
