package controllers

import (
	"net/http"

	"event-portal/middleware"
	"event-portal/models"

	"github.com/gin-gonic/gin"
)

func GetMenuItems(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		stallID, ok := paramID(c, "stall_id")
		if !ok {
			return
		}
		items, err := env.API.ListMenuItems(ctx, middleware.Session(c).AccessToken, stallID)
		if err != nil {
			respondError(c, env.Log, "list_menu_items_failed", err)
			return
		}
		if items == nil {
			items = []models.MenuItem{}
		}
		c.JSON(http.StatusOK, items)
	}
}

func GetMenuItem(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		stallID, ok := paramID(c, "stall_id")
		if !ok {
			return
		}
		itemID, ok := paramID(c, "item_id")
		if !ok {
			return
		}
		item, err := env.API.GetMenuItem(ctx, middleware.Session(c).AccessToken, stallID, itemID)
		if err != nil {
			respondError(c, env.Log, "get_menu_item_failed", err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func CreateMenuItem(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		stallID, ok := ownStall(c)
		if !ok {
			return
		}
		var item models.MenuItemInput
		if !bindMenuItem(c, &item) {
			return
		}
		created, err := env.API.CreateMenuItem(ctx, middleware.Session(c).AccessToken, stallID, item)
		if err != nil {
			respondError(c, env.Log, "create_menu_item_failed", err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func UpdateMenuItem(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		stallID, ok := ownStall(c)
		if !ok {
			return
		}
		itemID, ok := paramID(c, "item_id")
		if !ok {
			return
		}
		var item models.MenuItemInput
		if !bindMenuItem(c, &item) {
			return
		}
		updated, err := env.API.UpdateMenuItem(ctx, middleware.Session(c).AccessToken, stallID, itemID, item)
		if err != nil {
			respondError(c, env.Log, "update_menu_item_failed", err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteMenuItem(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		stallID, ok := ownStall(c)
		if !ok {
			return
		}
		itemID, ok := paramID(c, "item_id")
		if !ok {
			return
		}
		if err := env.API.DeleteMenuItem(ctx, middleware.Session(c).AccessToken, stallID, itemID); err != nil {
			respondError(c, env.Log, "delete_menu_item_failed", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
	}
}

// ownStall reads stall_id and refuses operators editing another stall's menu.
func ownStall(c *gin.Context) (int, bool) {
	stallID, ok := paramID(c, "stall_id")
	if !ok {
		return 0, false
	}
	sess := middleware.Session(c)
	if sess.Role.IsStall() && sess.StallID() != 0 && sess.StallID() != stallID {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "FORBIDDEN", Message: "You can only manage your own stall"})
		return 0, false
	}
	return stallID, true
}

func bindMenuItem(c *gin.Context, item *models.MenuItemInput) bool {
	if !bindJSON(c, item) {
		return false
	}
	if !item.Price.IsPositive() || !item.Price.Equal(item.Price.Round(2)) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "VALIDATION_ERROR",
			Message: "Request failed validation",
			Details: map[string]string{"Price": "positive amount with at most two decimals"},
		})
		return false
	}
	return true
}
