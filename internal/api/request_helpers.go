package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
)

// getPathUUID extracts and parses the UUID path parameter paramName.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// parseTaskFilter reads the optional status and search query parameters.
// Empty values are the same as absent ones. Values are used verbatim.
func parseTaskFilter(r *http.Request) (store.TaskFilter, error) {
	query := r.URL.Query()

	filter := store.TaskFilter{
		Search: query.Get("search"),
	}

	if raw := query.Get("status"); raw != "" {
		status, err := domain.ParseTaskStatus(raw)
		if err != nil {
			return store.TaskFilter{}, domain.NewValidationError("status", "is not a known status", err)
		}
		filter.Status = &status
	}

	return filter, nil
}

// requireCaller returns the user placed in the context by the auth
// middleware. If none is present it writes a 401 and returns false.
func requireCaller(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	caller, ok := shared.CallerFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, service.ErrMissingCaller, "")
		return nil, false
	}
	return caller, true
}

// decodeAndValidate decodes the JSON body into req and runs struct validation.
// On failure it writes a 400 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		message := "Invalid request format"
		if errors.Is(err, shared.ErrEmptyBody) {
			message = "Request body is required"
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, message, err)
		return false
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}

	return true
}
