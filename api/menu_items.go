package api

import (
	"context"
	"fmt"
	"net/http"

	"event-portal/models"
)

func menuItemsPath(stallID int) string {
	return fmt.Sprintf("/stalls/%d/menu-items", stallID)
}

func (c *Client) ListMenuItems(ctx context.Context, token string, stallID int) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := c.do(ctx, request{method: http.MethodGet, path: menuItemsPath(stallID), token: token, out: &items})
	return items, err
}

// GetMenuItem looks the item up in the stall listing; the platform has no
// single-item read.
func (c *Client) GetMenuItem(ctx context.Context, token string, stallID, itemID int) (*models.MenuItem, error) {
	items, err := c.ListMenuItems(ctx, token, stallID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == itemID {
			return &items[i], nil
		}
	}
	return nil, &NotFoundError{Message: fmt.Sprintf("menu item %d not found in stall %d", itemID, stallID)}
}

func (c *Client) CreateMenuItem(ctx context.Context, token string, stallID int, in models.MenuItemInput) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.do(ctx, request{method: http.MethodPost, path: menuItemsPath(stallID), token: token, body: in, out: &item}); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, token string, stallID, itemID int, in models.MenuItemInput) (*models.MenuItem, error) {
	var item models.MenuItem
	path := fmt.Sprintf("%s/%d", menuItemsPath(stallID), itemID)
	if err := c.do(ctx, request{method: http.MethodPut, path: path, token: token, body: in, out: &item}); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, token string, stallID, itemID int) error {
	path := fmt.Sprintf("%s/%d", menuItemsPath(stallID), itemID)
	return c.do(ctx, request{method: http.MethodDelete, path: path, token: token})
}
