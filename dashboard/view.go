// Package dashboard picks the one dashboard a role sees and fills it from
// the platform.
package dashboard

import "event-portal/models"

type Kind string

const (
	KindAdmin     Kind = "admin"
	KindFoodStall Kind = "food_stall"
	KindGameStall Kind = "game_stall"
	KindVolunteer Kind = "volunteer"
	KindStudent   Kind = "student"
)

type Section string

const (
	SectionStats    Section = "stats"
	SectionEvents   Section = "upcoming_events"
	SectionMenu     Section = "menu_items"
	SectionGames    Section = "games"
	SectionOrders   Section = "orders"
	SectionSessions Section = "current_sessions"
	SectionRevenue  Section = "todays_revenue"
)

// View is a closed set of dashboard variants. It is chosen once when the
// session learns the user's role.
type View interface {
	Kind() Kind
	Title() string
	Sections() []Section
	view()
}

type AdminView struct{}

func (AdminView) Kind() Kind    { return KindAdmin }
func (AdminView) Title() string { return "Admin Dashboard" }
func (AdminView) view()         {}
func (AdminView) Sections() []Section {
	return []Section{SectionStats, SectionEvents}
}

type StallKind string

const (
	StallFood StallKind = "food"
	StallGame StallKind = "game"
)

type StallView struct {
	Stall StallKind
}

func (v StallView) Kind() Kind {
	if v.Stall == StallGame {
		return KindGameStall
	}
	return KindFoodStall
}

func (v StallView) Title() string {
	if v.Stall == StallGame {
		return "Game Stall Management"
	}
	return "Food Stall Management"
}

func (v StallView) Sections() []Section {
	if v.Stall == StallGame {
		return []Section{SectionGames, SectionSessions, SectionRevenue}
	}
	return []Section{SectionMenu, SectionOrders, SectionRevenue}
}

func (StallView) view() {}

type VolunteerView struct{}

func (VolunteerView) Kind() Kind    { return KindVolunteer }
func (VolunteerView) Title() string { return "Volunteer Dashboard" }
func (VolunteerView) view()         {}
func (VolunteerView) Sections() []Section {
	return []Section{SectionEvents}
}

type StudentView struct{}

func (StudentView) Kind() Kind    { return KindStudent }
func (StudentView) Title() string { return "My Dashboard" }
func (StudentView) view()         {}
func (StudentView) Sections() []Section {
	return []Section{SectionEvents, SectionOrders}
}

// ViewFor maps every role to exactly one variant. The event team manages
// events and shares the admin view; unknown roles get the student view.
func ViewFor(role models.Role) View {
	switch role {
	case models.RoleAdmin, models.RoleEventTeam:
		return AdminView{}
	case models.RoleFoodStall:
		return StallView{Stall: StallFood}
	case models.RoleGameStall:
		return StallView{Stall: StallGame}
	case models.RoleVolunteer:
		return VolunteerView{}
	default:
		return StudentView{}
	}
}

// FromKind restores the variant stored on a session.
func FromKind(k Kind) (View, bool) {
	switch k {
	case KindAdmin:
		return AdminView{}, true
	case KindFoodStall:
		return StallView{Stall: StallFood}, true
	case KindGameStall:
		return StallView{Stall: StallGame}, true
	case KindVolunteer:
		return VolunteerView{}, true
	case KindStudent:
		return StudentView{}, true
	}
	return nil, false
}
