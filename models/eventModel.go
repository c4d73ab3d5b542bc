package models

import "time"

type Event struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	Date        time.Time `json:"date"`
	Capacity    int       `json:"capacity"`
	PosterURL   *string   `json:"poster_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   int       `json:"created_by"`
}

type EventCreate struct {
	Name        string    `json:"name" validate:"required,min=2,max=200"`
	Description string    `json:"description" validate:"required"`
	Venue       string    `json:"venue" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Capacity    int       `json:"capacity" validate:"required,gt=0"`
	PosterURL   *string   `json:"poster_url,omitempty" validate:"omitempty,url"`
}

// EventUpdate only sends the fields that were set.
type EventUpdate struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string    `json:"description,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Capacity    *int       `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	PosterURL   *string    `json:"poster_url,omitempty" validate:"omitempty,url"`
	IsActive    *bool      `json:"is_active,omitempty"`
}
