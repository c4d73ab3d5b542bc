package controllers

import (
	"net/http"

	"event-portal/middleware"
	"event-portal/models"

	"github.com/gin-gonic/gin"
)

func GetEvents(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		skip, ok := queryInt(c, "skip", 0)
		if !ok {
			return
		}
		limit, ok := queryInt(c, "limit", 100)
		if !ok {
			return
		}

		events, err := env.API.ListEvents(ctx, middleware.Session(c).AccessToken, skip, limit)
		if err != nil {
			respondError(c, env.Log, "list_events_failed", err)
			return
		}
		if events == nil {
			events = []models.Event{}
		}
		c.JSON(http.StatusOK, events)
	}
}

func GetEvent(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		eventID, ok := paramID(c, "event_id")
		if !ok {
			return
		}
		event, err := env.API.GetEvent(ctx, middleware.Session(c).AccessToken, eventID)
		if err != nil {
			respondError(c, env.Log, "get_event_failed", err)
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

func CreateEvent(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		var event models.EventCreate
		if !bindJSON(c, &event) {
			return
		}
		created, err := env.API.CreateEvent(ctx, middleware.Session(c).AccessToken, event)
		if err != nil {
			respondError(c, env.Log, "create_event_failed", err)
			return
		}
		env.Log.Info("event_created", "event created", requestID(c), map[string]interface{}{"event_id": created.ID})
		c.JSON(http.StatusCreated, created)
	}
}

func UpdateEvent(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		eventID, ok := paramID(c, "event_id")
		if !ok {
			return
		}
		var event models.EventUpdate
		if !bindJSON(c, &event) {
			return
		}
		updated, err := env.API.UpdateEvent(ctx, middleware.Session(c).AccessToken, eventID, event)
		if err != nil {
			respondError(c, env.Log, "update_event_failed", err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteEvent(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := upstreamContext(c)
		defer cancel()

		eventID, ok := paramID(c, "event_id")
		if !ok {
			return
		}
		if err := env.API.DeleteEvent(ctx, middleware.Session(c).AccessToken, eventID); err != nil {
			respondError(c, env.Log, "delete_event_failed", err)
			return
		}
		env.Log.Info("event_deleted", "event deleted", requestID(c), map[string]interface{}{"event_id": eventID})
		c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
	}
}
