package api

import (
	"context"
	"fmt"
	"net/http"

	"event-portal/models"
)

func (c *Client) CreateOrder(ctx context.Context, token string, in models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, request{method: http.MethodPost, path: "/orders", token: token, body: in, out: &order}); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context, token string, params models.ListOrdersParams) ([]models.Order, error) {
	q := pagination(params.Skip, params.Limit)
	if params.Status != "" {
		q.Set("status", string(params.Status))
	}
	var orders []models.Order
	err := c.do(ctx, request{method: http.MethodGet, path: "/orders", token: token, query: q, out: &orders})
	return orders, err
}

func (c *Client) GetOrder(ctx context.Context, token string, id int) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/orders/%d", id), token: token, out: &order}); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus asks the platform to move the order to status. The
// platform refuses anything but the legal next state.
func (c *Client) UpdateOrderStatus(ctx context.Context, token string, id int, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   fmt.Sprintf("/orders/%d/status", id),
		token:  token,
		body:   map[string]models.OrderStatus{"status": status},
		out:    &order,
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CancelOrder(ctx context.Context, token string, id int) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/orders/%d", id), token: token, out: &order}); err != nil {
		return nil, err
	}
	return &order, nil
}
