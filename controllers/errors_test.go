package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"event-portal/api"
	"event-portal/models"
	"event-portal/orderstatus"

	"gopkg.in/go-playground/assert.v1"
)

func TestErrorResponse(t *testing.T) {
	transition := func(err error) error {
		return &orderstatus.TransitionError{OrderID: 4, From: models.StatusPending, To: models.StatusPreparing, Err: err}
	}

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", &api.ValidationError{StatusCode: 422, Message: "body.items: field required"}, 422, "VALIDATION_ERROR", "body.items: field required"},
		{"conflict in transition", transition(&api.ConflictError{StatusCode: 409, Message: "already preparing"}), http.StatusConflict, "CONFLICT", "already preparing"},
		{"unauthorized", &api.AuthError{StatusCode: 401, Message: "expired"}, http.StatusUnauthorized, "UNAUTHORIZED", "expired"},
		{"forbidden", &api.AuthError{StatusCode: 403, Message: "role"}, http.StatusForbidden, "FORBIDDEN", "role"},
		{"not found", fmt.Errorf("load: %w", &api.NotFoundError{Message: "Order not found"}), http.StatusNotFound, "NOT_FOUND", "Order not found"},
		{"no transition", transition(orderstatus.ErrNoTransition), http.StatusConflict, "INVALID_TRANSITION", orderstatus.ErrNoTransition.Error()},
		{"superseded", transition(orderstatus.ErrSuperseded), http.StatusConflict, "INVALID_TRANSITION", orderstatus.ErrSuperseded.Error()},
		{"network", &api.NetworkError{Op: "GET /orders", Err: errors.New("refused")}, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "The platform could not be reached"},
		{"service", &api.ServiceError{StatusCode: 500, Message: "boom"}, http.StatusBadGateway, "UPSTREAM_ERROR", "boom"},
		{"unknown", errors.New("odd"), http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := errorResponse(tt.err)
			assert.Equal(t, status, tt.status)
			assert.Equal(t, body.Error, tt.code)
			assert.Equal(t, body.Message, tt.message)
		})
	}
}
