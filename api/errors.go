package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError means the platform rejected the shape or values of a request.
type ValidationError struct {
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// ConflictError means the request does not fit the current state of the
// resource, such as an illegal order status transition.
type ConflictError struct {
	StatusCode int
	Message    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Message)
}

// AuthError covers missing, expired and insufficient-role credentials.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("not authorized: %s", e.Message)
}

// Forbidden reports whether the credential was valid but lacked the role.
func (e *AuthError) Forbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Message)
}

// ServiceError is any other non-2xx answer.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("platform returned %d: %s", e.StatusCode, e.Message)
}

// NetworkError wraps a transport failure; the request may or may not have
// reached the platform.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// errorBody matches the error payloads the platform emits. FastAPI puts a
// string in detail for HTTPException and a list for request validation.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func errorFromResponse(statusCode int, body []byte) error {
	msg := detailMessage(body)
	if msg == "" {
		msg = http.StatusText(statusCode)
	}

	switch {
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		return &ValidationError{StatusCode: statusCode, Message: msg}
	case statusCode == http.StatusConflict:
		return &ConflictError{StatusCode: statusCode, Message: msg}
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &AuthError{StatusCode: statusCode, Message: msg}
	case statusCode == http.StatusNotFound:
		return &NotFoundError{Message: msg}
	default:
		return &ServiceError{StatusCode: statusCode, Message: msg}
	}
}

func detailMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return strings.TrimSpace(string(body))
	}
	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil {
			return s
		}
		var items []struct {
			Loc []interface{} `json:"loc"`
			Msg string        `json:"msg"`
		}
		if err := json.Unmarshal(eb.Detail, &items); err == nil && len(items) > 0 {
			parts := make([]string, 0, len(items))
			for _, it := range items {
				parts = append(parts, fmt.Sprintf("%s: %s", joinLoc(it.Loc), it.Msg))
			}
			return strings.Join(parts, "; ")
		}
		return string(eb.Detail)
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}

func joinLoc(loc []interface{}) string {
	parts := make([]string, 0, len(loc))
	for _, l := range loc {
		parts = append(parts, fmt.Sprint(l))
	}
	return strings.Join(parts, ".")
}
