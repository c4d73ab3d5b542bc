package models

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleEventTeam Role = "event_team"
	RoleVolunteer Role = "volunteer"
	RoleStudent   Role = "student"
	RoleFoodStall Role = "food_stall"
	RoleGameStall Role = "game_stall"
)

// Valid reports whether r is one of the platform roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEventTeam, RoleVolunteer, RoleStudent, RoleFoodStall, RoleGameStall:
		return true
	}
	return false
}

// IsStall reports whether r operates a stall and receives orders.
func (r Role) IsStall() bool {
	return r == RoleFoodStall || r == RoleGameStall
}

type User struct {
	ID                  int    `json:"id"`
	Email               string `json:"email"`
	FullName            string `json:"full_name"`
	Role                Role   `json:"role"`
	IsVerified          bool   `json:"is_verified"`
	UnreadNotifications int    `json:"unread_notifications"`
	StallID             *int   `json:"stall_id,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Role     Role   `json:"role" validate:"required,oneof=admin event_team volunteer student food_stall game_stall"`
}

// LoginResponse is what the platform returns from a primary login or a
// two-factor exchange. When RequiresTwoFactor is set, only TempToken is filled.
type LoginResponse struct {
	AccessToken       string `json:"access_token"`
	TokenType         string `json:"token_type"`
	User              *User  `json:"user,omitempty"`
	RequiresTwoFactor bool   `json:"requires_2fa,omitempty"`
	TempToken         string `json:"temp_token,omitempty"`
}

type TwoFactorRequest struct {
	Code string `json:"code" validate:"required,numeric,len=6"`
}

type TwoFactorSetup struct {
	SecretKey   string   `json:"secret_key"`
	BackupCodes []string `json:"backup_codes"`
	QRCodeURL   string   `json:"qr_code_url"`
}
