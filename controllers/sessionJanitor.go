package controllers

import (
	"context"
	"time"

	"event-portal/sessions"
)

// SessionSeen records when a live session runs out so Sweep can find it.
func (env *Env) SessionSeen(sess *sessions.Session) {
	env.liveMu.Lock()
	env.live[sess.ID] = sess.ExpiresAt
	env.liveMu.Unlock()
}

// SessionEnded drops everything the portal holds for a session: its carts,
// its order controllers and its websocket connections. Safe to call twice.
func (env *Env) SessionEnded(sessionID string) {
	env.liveMu.Lock()
	delete(env.live, sessionID)
	env.liveMu.Unlock()

	env.Carts.DiscardSession(sessionID)
	env.Orders.Discard(sessionID)
	env.Hub.CloseSession(sessionID)
}

// Sweep ends every session expired at now, including ones no request has
// touched since. It returns how many were ended.
func (env *Env) Sweep(now time.Time) int {
	ended := make(map[string]struct{})

	env.liveMu.Lock()
	for id, expiresAt := range env.live {
		if now.After(expiresAt) {
			ended[id] = struct{}{}
		}
	}
	env.liveMu.Unlock()

	if sw, ok := env.Sessions.(sessions.Sweeper); ok {
		for _, id := range sw.Sweep(now) {
			ended[id] = struct{}{}
		}
	}

	for id := range ended {
		env.SessionEnded(id)
	}
	if len(ended) > 0 {
		env.Log.Debug("sessions_swept", "ended expired sessions", "", map[string]interface{}{"count": len(ended)})
	}
	return len(ended)
}

// RunJanitor sweeps on every tick until ctx is done.
func (env *Env) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			env.Sweep(now)
		}
	}
}
