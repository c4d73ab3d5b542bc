package controllers

import (
	"context"
	"net/http"

	"event-portal/middleware"
	"event-portal/models"
	"event-portal/orderstatus"
	"event-portal/sessions"

	"github.com/gin-gonic/gin"
)

func GetOrders(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		var params models.ListOrdersParams
		if err := c.ShouldBindQuery(&params); err != nil {
			respondInvalid(c, "Invalid query", err.Error())
			return
		}
		if err := validate.Struct(&params); err != nil {
			respondValidation(c, err)
			return
		}
		if params.Status != "" && !orderstatus.Valid(params.Status) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "VALIDATION_ERROR",
				Message: "Request failed validation",
				Details: map[string]string{"Status": "unknown order status " + string(params.Status)},
			})
			return
		}

		sess := middleware.Session(c)
		orders, err := env.API.ListOrders(ctx, sess.AccessToken, params)
		if err != nil {
			respondError(c, env.Log, "list_orders_failed", err)
			return
		}

		ctrl := env.Orders.For(sess.ID)
		views := make([]orderstatus.View, 0, len(orders))
		for _, o := range orders {
			views = append(views, ctrl.Track(o))
		}
		c.JSON(http.StatusOK, views)
	}
}

// GetOrder returns the order with the single action and cancel choice the
// operator may be offered.
func GetOrder(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		orderID, ok := paramID(c, "order_id")
		if !ok {
			return
		}
		sess := middleware.Session(c)
		order, err := env.API.GetOrder(ctx, sess.AccessToken, orderID)
		if err != nil {
			respondError(c, env.Log, "get_order_failed", err)
			return
		}
		c.JSON(http.StatusOK, env.Orders.For(sess.ID).Track(*order))
	}
}

func AdvanceOrder(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		orderID, ok := paramID(c, "order_id")
		if !ok {
			return
		}
		sess := middleware.Session(c)
		ctrl, err := trackedController(ctx, env, sess, orderID)
		if err != nil {
			respondError(c, env.Log, "advance_order_failed", err)
			return
		}

		view, err := ctrl.Advance(ctx, sess.AccessToken, orderID)
		if err != nil {
			respondError(c, env.Log, "advance_order_failed", err)
			return
		}
		env.Log.Info("order_advanced", "order status confirmed", requestID(c), map[string]interface{}{
			"order_id": orderID,
			"status":   view.Order.Status,
		})
		c.JSON(http.StatusOK, view)
	}
}

func CancelOrder(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		orderID, ok := paramID(c, "order_id")
		if !ok {
			return
		}
		sess := middleware.Session(c)
		ctrl, err := trackedController(ctx, env, sess, orderID)
		if err != nil {
			respondError(c, env.Log, "cancel_order_failed", err)
			return
		}

		view, err := ctrl.Cancel(ctx, sess.AccessToken, orderID)
		if err != nil {
			respondError(c, env.Log, "cancel_order_failed", err)
			return
		}
		env.Log.Info("order_cancelled", "order cancelled", requestID(c), map[string]interface{}{"order_id": orderID})
		c.JSON(http.StatusOK, view)
	}
}

// trackedController makes sure the session's view holds the order before a
// transition is offered for it.
func trackedController(ctx context.Context, env *Env, sess *sessions.Session, orderID int) (*orderstatus.Controller, error) {
	ctrl := env.Orders.For(sess.ID)
	if _, ok := ctrl.Get(orderID); ok {
		return ctrl, nil
	}
	order, err := env.API.GetOrder(ctx, sess.AccessToken, orderID)
	if err != nil {
		return nil, err
	}
	ctrl.Track(*order)
	return ctrl, nil
}
