package dashboard

import (
	"context"
	"fmt"
	"time"

	"event-portal/models"
	"event-portal/orderstatus"

	"github.com/shopspring/decimal"
)

const (
	eventsLimit = 10
	ordersLimit = 50
)

// Source is the slice of the platform client the dashboards read from.
type Source interface {
	ListEvents(ctx context.Context, token string, skip, limit int) ([]models.Event, error)
	ListMenuItems(ctx context.Context, token string, stallID int) ([]models.MenuItem, error)
	ListOrders(ctx context.Context, token string, params models.ListOrdersParams) ([]models.Order, error)
}

type Payload struct {
	Kind     Kind                    `json:"kind"`
	Title    string                  `json:"title"`
	User     *models.User            `json:"user,omitempty"`
	Sections map[Section]interface{} `json:"sections"`
}

type Stats struct {
	ActiveEvents        int `json:"active_events"`
	UnreadNotifications int `json:"unread_notifications"`
}

type Loader struct {
	src Source
	now func() time.Time
}

func NewLoader(src Source) *Loader {
	return &Loader{src: src, now: time.Now}
}

// Load fetches every section the view renders. The first failing upstream
// call aborts the load.
func (l *Loader) Load(ctx context.Context, v View, token string, user *models.User) (*Payload, error) {
	p := &Payload{
		Kind:     v.Kind(),
		Title:    v.Title(),
		User:     user,
		Sections: make(map[Section]interface{}, len(v.Sections())),
	}

	var orders []models.Order
	loadOrders := func() ([]models.Order, error) {
		if orders != nil {
			return orders, nil
		}
		list, err := l.src.ListOrders(ctx, token, models.ListOrdersParams{Limit: ordersLimit})
		if err != nil {
			return nil, fmt.Errorf("load orders: %w", err)
		}
		orders = list
		if orders == nil {
			orders = []models.Order{}
		}
		return orders, nil
	}

	for _, s := range v.Sections() {
		switch s {
		case SectionEvents:
			events, err := l.src.ListEvents(ctx, token, 0, eventsLimit)
			if err != nil {
				return nil, fmt.Errorf("load events: %w", err)
			}
			p.Sections[s] = upcoming(events, l.now())

		case SectionStats:
			events, err := l.src.ListEvents(ctx, token, 0, 100)
			if err != nil {
				return nil, fmt.Errorf("load events: %w", err)
			}
			stats := Stats{}
			for _, e := range events {
				if e.IsActive {
					stats.ActiveEvents++
				}
			}
			if user != nil {
				stats.UnreadNotifications = user.UnreadNotifications
			}
			p.Sections[s] = stats

		case SectionMenu, SectionGames:
			items := []models.MenuItem{}
			if user != nil && user.StallID != nil {
				list, err := l.src.ListMenuItems(ctx, token, *user.StallID)
				if err != nil {
					return nil, fmt.Errorf("load menu items: %w", err)
				}
				items = append(items, list...)
			}
			p.Sections[s] = items

		case SectionOrders:
			list, err := loadOrders()
			if err != nil {
				return nil, err
			}
			p.Sections[s] = views(list, nil)

		case SectionSessions:
			list, err := loadOrders()
			if err != nil {
				return nil, err
			}
			p.Sections[s] = views(list, func(o models.Order) bool {
				return o.Status == models.StatusPreparing || o.Status == models.StatusReady
			})

		case SectionRevenue:
			list, err := loadOrders()
			if err != nil {
				return nil, err
			}
			p.Sections[s] = revenueOn(list, l.now())
		}
	}
	return p, nil
}

func upcoming(events []models.Event, now time.Time) []models.Event {
	out := []models.Event{}
	for _, e := range events {
		if e.IsActive && !e.Date.Before(now) {
			out = append(out, e)
		}
	}
	return out
}

func views(orders []models.Order, keep func(models.Order) bool) []orderstatus.View {
	out := []orderstatus.View{}
	for _, o := range orders {
		if keep == nil || keep(o) {
			out = append(out, orderstatus.ViewOf(o))
		}
	}
	return out
}

// revenueOn sums completed orders created on the same UTC day as now.
func revenueOn(orders []models.Order, now time.Time) decimal.Decimal {
	y, m, d := now.UTC().Date()
	total := decimal.Zero
	for _, o := range orders {
		if o.Status != models.StatusCompleted {
			continue
		}
		oy, om, od := o.CreatedAt.UTC().Date()
		if oy == y && om == m && od == d {
			total = total.Add(o.TotalAmount)
		}
	}
	return total.Round(2)
}
