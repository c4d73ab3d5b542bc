package controllers

import (
	"errors"
	"net/http"

	"event-portal/api"
	"event-portal/logger"
	"event-portal/models"
	"event-portal/orderstatus"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func respondInvalid(c *gin.Context, message, details string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "INVALID_INPUT",
		Message: message,
		Details: details,
	})
}

func respondValidation(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		respondInvalid(c, "Invalid request body", err.Error())
		return
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fe.Tag()
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: "Request failed validation",
		Details: fields,
	})
}

// respondError maps platform and order-state errors onto portal responses.
// The platform's own message is passed through unchanged.
func respondError(c *gin.Context, log *logger.Logger, action string, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		log.Error(action, "upstream call failed", requestID(c), err, nil)
	} else {
		log.Debug(action, err.Error(), requestID(c), nil)
	}
	c.JSON(status, body)
}

func errorResponse(err error) (int, models.ErrorResponse) {
	var (
		validation *api.ValidationError
		conflict   *api.ConflictError
		auth       *api.AuthError
		notFound   *api.NotFoundError
		service    *api.ServiceError
		network    *api.NetworkError
		transition *orderstatus.TransitionError
	)

	details := func() interface{} {
		if errors.As(err, &transition) {
			return gin.H{"order_id": transition.OrderID, "from": transition.From, "to": transition.To}
		}
		return nil
	}

	switch {
	case errors.As(err, &validation):
		status := validation.StatusCode
		if status == 0 {
			status = http.StatusBadRequest
		}
		return status, models.ErrorResponse{Error: "VALIDATION_ERROR", Message: validation.Message, Details: details()}
	case errors.As(err, &conflict):
		return http.StatusConflict, models.ErrorResponse{Error: "CONFLICT", Message: conflict.Message, Details: details()}
	case errors.As(err, &auth):
		if auth.Forbidden() {
			return http.StatusForbidden, models.ErrorResponse{Error: "FORBIDDEN", Message: auth.Message}
		}
		return http.StatusUnauthorized, models.ErrorResponse{Error: "UNAUTHORIZED", Message: auth.Message}
	case errors.As(err, &notFound), errors.Is(err, orderstatus.ErrUnknownOrder):
		msg := err.Error()
		if notFound != nil {
			msg = notFound.Message
		}
		return http.StatusNotFound, models.ErrorResponse{Error: "NOT_FOUND", Message: msg}
	case errors.Is(err, orderstatus.ErrNoTransition), errors.Is(err, orderstatus.ErrNotCancellable), errors.Is(err, orderstatus.ErrSuperseded):
		msg := err.Error()
		if errors.As(err, &transition) {
			msg = transition.Err.Error()
		}
		return http.StatusConflict, models.ErrorResponse{Error: "INVALID_TRANSITION", Message: msg, Details: details()}
	case errors.As(err, &network):
		return http.StatusBadGateway, models.ErrorResponse{Error: "UPSTREAM_UNAVAILABLE", Message: "The platform could not be reached", Details: network.Error()}
	case errors.As(err, &service):
		return http.StatusBadGateway, models.ErrorResponse{Error: "UPSTREAM_ERROR", Message: service.Message, Details: service.StatusCode}
	}
	return http.StatusInternalServerError, models.ErrorResponse{Error: "INTERNAL_ERROR", Message: "Something went wrong"}
}
