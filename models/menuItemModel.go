package models

import "github.com/shopspring/decimal"

func init() {
	// The platform speaks plain JSON numbers for money.
	decimal.MarshalJSONWithoutQuotes = true
}

type MenuItem struct {
	ID          int             `json:"id"`
	StallID     int             `json:"stall_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url,omitempty"`
	IsAvailable bool            `json:"is_available"`
	Category    string          `json:"category"`
}

type MenuItemInput struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url,omitempty" validate:"omitempty,url"`
	IsAvailable bool            `json:"is_available"`
	Category    string          `json:"category" validate:"required"`
}
