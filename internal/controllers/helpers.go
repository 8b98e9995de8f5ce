package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

// ValidationErrorDetail is the per-field entry in a 400 response.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// formatValidationErrors converts validator errors into a
// user-friendly format.
func formatValidationErrors(errs validator.ValidationErrors) []ValidationErrorDetail {
	var details []ValidationErrorDetail
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field '%s' is required", err.Field())
		case "email":
			message = fmt.Sprintf("Field '%s' must be a valid email address", err.Field())
		case "min":
			message = fmt.Sprintf("Field '%s' must be at least %s in length", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field '%s' must not exceed %s in length", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("Field '%s' must be at least %s", err.Field(), err.Param())
		case "lte":
			message = fmt.Sprintf("Field '%s' must not exceed %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("Field '%s' must be one of [%s]", err.Field(), err.Param())
		case "datetime":
			message = fmt.Sprintf("Field '%s' must match the format %s", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag())
		}
		details = append(details, ValidationErrorDetail{
			Field:   err.Field(),
			Message: message,
			Code:    "validation_" + err.Tag(),
		})
	}
	return details
}

// respondValidationError handles the two shapes validator.StructCtx
// can return.
func respondValidationError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation,
			"Validation error", formatValidationErrors(validationErrs), err)
		return
	}
	utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
}

// respondServiceError maps the service error taxonomy onto HTTP
// statuses. Anything untyped is a 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var (
		validationErr *utils.ValidationError
		conflictErr   *utils.ConflictError
		notFoundErr   *utils.NotFoundError
		stateErr      *utils.InvalidStateError
	)
	switch {
	case errors.As(err, &validationErr):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, validationErr.Message, nil, err)
	case errors.As(err, &notFoundErr):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, notFoundErr.Message, nil, err)
	case errors.As(err, &conflictErr):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, conflictErr.Message, nil, err)
	case errors.As(err, &stateErr):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeInvalidState, stateErr.Message, nil, err)
	default:
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error", nil, err)
	}
}

// pathUUID extracts and parses a UUID path variable.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return uuid.Nil, fmt.Errorf("missing path variable %q", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// parseMonth parses a YYYY-MM query or body value.
func parseMonth(s string) (year int, month int, err error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return t.Year(), int(t.Month()), nil
}
