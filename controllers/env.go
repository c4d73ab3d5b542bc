package controllers

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"event-portal/api"
	"event-portal/cart"
	"event-portal/dashboard"
	"event-portal/logger"
	"event-portal/middleware"
	"event-portal/orderstatus"
	"event-portal/sessions"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const requestTimeout = 30 * time.Second

// Env carries what every handler needs. One Env serves the whole portal.
type Env struct {
	API          *api.Client
	Sessions     sessions.Store
	Carts        *cart.Registry
	Orders       *orderstatus.Registry
	Dashboards   *dashboard.Loader
	Hub          *Hub
	Log          *logger.Logger
	SecretKey    string
	SessionTTL   time.Duration
	SecureCookie bool

	liveMu sync.Mutex
	live   map[string]time.Time
}

func NewEnv(client *api.Client, store sessions.Store, log *logger.Logger, secret string, ttl time.Duration, origins []string) *Env {
	hub := NewHub(origins, log)
	return &Env{
		API:        client,
		Sessions:   store,
		Carts:      cart.NewRegistry(),
		Orders:     orderstatus.NewRegistry(client, hub.StatusNotifier),
		Dashboards: dashboard.NewLoader(client),
		Hub:        hub,
		Log:        log,
		SecretKey:  secret,
		SessionTTL: ttl,
		live:       make(map[string]time.Time),
	}
}

func upstreamContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondInvalid(c, "Invalid request body", err.Error())
		return false
	}
	if err := validate.Struct(obj); err != nil {
		respondValidation(c, err)
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		respondInvalid(c, "Invalid "+name, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		respondInvalid(c, "Invalid "+name, name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
