package controllers

import (
	"net/http"

	"event-portal/cart"
	"event-portal/middleware"
	"event-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type addCartItemRequest struct {
	ItemID int `json:"item_id" validate:"required,gt=0"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type cartLineResponse struct {
	Item     models.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type cartResponse struct {
	StallID int                `json:"stall_id"`
	Lines   []cartLineResponse `json:"lines"`
	Total   decimal.Decimal    `json:"total"`
	Items   int                `json:"item_count"`
}

func newCartResponse(ct *cart.Cart) cartResponse {
	lines := ct.Lines()
	resp := cartResponse{
		StallID: ct.StallID(),
		Lines:   make([]cartLineResponse, 0, len(lines)),
		Total:   ct.Total(),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, cartLineResponse{Item: l.Item, Quantity: l.Quantity, Subtotal: l.Subtotal()})
		resp.Items += l.Quantity
	}
	return resp
}

func GetCart(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		stallID, ok := paramID(c, "stall_id")
		if !ok {
			return
		}
		ct := env.Carts.Get(middleware.Session(c).ID, stallID)
		c.JSON(http.StatusOK, newCartResponse(ct))
	}
}

// AddCartItem looks the item up on the platform so the line carries the
// current name and price, then adds one of it.
func AddCartItem(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		stallID, ok := paramID(c, "stall_id")
		if !ok {
			return
		}
		var req addCartItemRequest
		if !bindJSON(c, &req) {
			return
		}

		sess := middleware.Session(c)
		item, err := env.API.GetMenuItem(ctx, sess.AccessToken, stallID, req.ItemID)
		if err != nil {
			respondError(c, env.Log, "add_cart_item_failed", err)
			return
		}
		if !item.IsAvailable {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "ITEM_UNAVAILABLE", Message: item.Name + " is not available"})
			return
		}

		ct := env.Carts.Get(sess.ID, stallID)
		ct.AddItem(*item)
		c.JSON(http.StatusOK, newCartResponse(ct))
	}
}

// SetCartItemQuantity sets a line's quantity; zero or less removes it.
func SetCartItemQuantity(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		stallID, ok := paramID(c, "stall_id")
		if !ok {
			return
		}
		itemID, ok := paramID(c, "item_id")
		if !ok {
			return
		}
		var req setQuantityRequest
		if !bindJSON(c, &req) {
			return
		}

		ct := env.Carts.Get(middleware.Session(c).ID, stallID)
		if ct.Quantity(itemID) == 0 && *req.Quantity > 0 {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "NOT_FOUND", Message: "Item is not in the cart"})
			return
		}
		ct.SetQuantity(itemID, *req.Quantity)
		c.JSON(http.StatusOK, newCartResponse(ct))
	}
}

func ClearCart(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		stallID, ok := paramID(c, "stall_id")
		if !ok {
			return
		}
		env.Carts.Discard(middleware.Session(c).ID, stallID)
		c.JSON(http.StatusOK, newCartResponse(cart.New(stallID)))
	}
}

// Checkout places the order. The cart survives a failed attempt so the user
// can retry; it is emptied only once the platform accepted the order.
func Checkout(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		stallID, ok := paramID(c, "stall_id")
		if !ok {
			return
		}
		sess := middleware.Session(c)
		ct := env.Carts.Get(sess.ID, stallID)

		req := models.CreateOrderRequest{StallID: stallID, Items: ct.ToOrderPayload()}
		if len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "EMPTY_CART", Message: "Add at least one item before ordering"})
			return
		}
		if err := validate.Struct(&req); err != nil {
			respondValidation(c, err)
			return
		}

		order, err := env.API.CreateOrder(ctx, sess.AccessToken, req)
		if err != nil {
			respondError(c, env.Log, "checkout_failed", err)
			return
		}

		env.Carts.Discard(sess.ID, stallID)
		view := env.Orders.For(sess.ID).Track(*order)
		env.Hub.NotifyStall(*order)
		env.Log.Info("order_placed", "order placed", requestID(c), map[string]interface{}{
			"order_id": order.ID,
			"stall_id": stallID,
			"total":    order.TotalAmount.StringFixed(2),
		})
		c.JSON(http.StatusCreated, view)
	}
}
