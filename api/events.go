package api

import (
	"context"
	"fmt"
	"net/http"

	"event-portal/models"
)

func (c *Client) ListEvents(ctx context.Context, token string, skip, limit int) ([]models.Event, error) {
	var events []models.Event
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/events",
		token:  token,
		query:  pagination(skip, limit),
		out:    &events,
	})
	return events, err
}

func (c *Client) GetEvent(ctx context.Context, token string, id int) (*models.Event, error) {
	var event models.Event
	if err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/events/%d", id), token: token, out: &event}); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) CreateEvent(ctx context.Context, token string, in models.EventCreate) (*models.Event, error) {
	var event models.Event
	if err := c.do(ctx, request{method: http.MethodPost, path: "/events", token: token, body: in, out: &event}); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) UpdateEvent(ctx context.Context, token string, id int, in models.EventUpdate) (*models.Event, error) {
	var event models.Event
	if err := c.do(ctx, request{method: http.MethodPut, path: fmt.Sprintf("/events/%d", id), token: token, body: in, out: &event}); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, token string, id int) error {
	return c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/events/%d", id), token: token})
}
