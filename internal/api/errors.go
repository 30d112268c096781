package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrMissingCaller):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, auth.ErrDuplicateUsername):
		return http.StatusConflict

	// Checked before ErrPersistence: validation failures are never wrapped as persistence errors.
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid username or password"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrMissingCaller):
		return "Invalid token"

	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, auth.ErrDuplicateUsername):
		return "Username already exists"

	case errors.Is(err, domain.ErrInvalidTaskStatus):
		return fmt.Sprintf("Invalid status: must be one of %s", statusList())

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	case errors.Is(err, domain.ErrValidation):
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Message)
		}
		return "Invalid request"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator output into a message naming the
// first failing field and rule. Other errors get a generic message.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation failed"
	}

	first := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", first.Field(), validationTagMessage(first.Tag(), first.Param()))
}

func validationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return fmt.Sprintf("must be at least %s characters", param)
	case "max":
		return fmt.Sprintf("must be at most %s characters", param)
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(param), ", ")
	case "notblank":
		return "must not be blank"
	default:
		return "invalid value"
	}
}

func statusList() string {
	names := make([]string, 0, len(domain.AllTaskStatuses()))
	for _, s := range domain.AllTaskStatuses() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}

// HandleAPIError maps err to a status code and safe message, logs the
// redacted error and writes the response.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallbackMessage != "" {
		message = fallbackMessage
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
