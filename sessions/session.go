// Package sessions holds the explicit per-browser session the portal passes
// to every handler, and the stores that keep it between requests.
package sessions

import (
	"context"
	"errors"
	"time"

	"event-portal/dashboard"
	"event-portal/models"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Session is everything the portal knows about one signed-in browser.
// AccessToken and TempToken are the platform's tokens in plain text; stores
// that write outside the process seal them first.
type Session struct {
	ID          string         `json:"id"`
	User        *models.User   `json:"user,omitempty"`
	Role        models.Role    `json:"role,omitempty"`
	AccessToken string         `json:"access_token,omitempty"`
	TempToken   string         `json:"temp_token,omitempty"`
	Pending2FA  bool           `json:"pending_2fa"`
	View        dashboard.Kind `json:"view,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	ExpiresAt   time.Time      `json:"expires_at"`
}

type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Sweeper is a store that must drop expired sessions itself. Redis expires
// keys on its own and does not implement it.
type Sweeper interface {
	Sweep(now time.Time) []string
}

func New(ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Authenticated is true once the platform issued an access token and no
// second factor is outstanding.
func (s *Session) Authenticated() bool {
	return s.AccessToken != "" && !s.Pending2FA
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Apply records a platform login answer. A two-factor challenge keeps only
// the temporary token; a completed login picks the dashboard once.
func (s *Session) Apply(resp *models.LoginResponse) {
	if resp.RequiresTwoFactor {
		s.Pending2FA = true
		s.TempToken = resp.TempToken
		s.AccessToken = ""
		return
	}
	s.Pending2FA = false
	s.TempToken = ""
	s.AccessToken = resp.AccessToken
	if resp.User != nil {
		s.SetUser(resp.User)
	}
}

func (s *Session) SetUser(u *models.User) {
	s.User = u
	s.Role = u.Role
	s.View = dashboard.ViewFor(u.Role).Kind()
}

// StallID is the stall the signed-in operator runs, 0 when none.
func (s *Session) StallID() int {
	if s.User == nil || s.User.StallID == nil {
		return 0
	}
	return *s.User.StallID
}
