package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"event-portal/api"
	"event-portal/config"
	controller "event-portal/controllers"
	"event-portal/logger"
	"event-portal/routes"
	"event-portal/sessions"

	"github.com/gin-gonic/gin"
)

const sessionSweepInterval = time.Minute

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	log := logger.New("event-portal", cfg.LogLevel)
	requestID := logger.GenerateRequestID()

	if err := cfg.Validate(); err != nil {
		log.Error("config_invalid", "refusing to start", requestID, err, nil)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := sessionStore(ctx, cfg)
	if err != nil {
		log.Error("session_store_failed", "could not open session store", requestID, err, nil)
		os.Exit(1)
	}
	defer closeStore()

	client := api.NewClient(cfg.PlatformAPIURL, cfg.APITimeout)
	env := controller.NewEnv(client, store, log, cfg.SecretKey, cfg.SessionTTL, cfg.AllowedOrigins)
	env.SecureCookie = cfg.GinMode == gin.ReleaseMode
	go env.RunJanitor(ctx, sessionSweepInterval)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.Router(env, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("Listening on :%s", cfg.Port), requestID, map[string]interface{}{
			"platform_api": cfg.PlatformAPIURL,
			"redis":        cfg.RedisURL != "",
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("service_failed", "HTTP server failed", requestID, err, nil)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown_failed", "HTTP server did not stop cleanly", requestID, err, nil)
	}
	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// sessionStore uses Redis when REDIS_URL is set so several portal instances
// can share sessions; otherwise sessions live in this process.
func sessionStore(ctx context.Context, cfg *config.Config) (sessions.Store, func(), error) {
	if cfg.RedisURL == "" {
		return sessions.NewMemoryStore(), func() {}, nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	store, err := sessions.NewRedisStore(pingCtx, cfg.RedisURL, sessions.NewSealer(cfg.SealKey))
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}
