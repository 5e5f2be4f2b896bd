package handler

import (
	"errors"

	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// ===== Authentication Errors → 401 =====
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError("invalid email or password")
	case errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrRefreshTokenExpired):
		return model.NewUnauthorizedError("invalid or expired refresh token")

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotCaptain),
		errors.Is(err, service.ErrNotCrewMember),
		errors.Is(err, service.ErrNotPostAuthor):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrCharacterNotFound):
		return model.NewNotFoundError("character")
	case errors.Is(err, service.ErrCrewNotFound):
		return model.NewNotFoundError("crew")
	case errors.Is(err, service.ErrCombatantNotFound):
		return model.NewNotFoundError("combatant")
	case errors.Is(err, service.ErrPostNotFound):
		return model.NewNotFoundError("forum post")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrAlreadyCrewMember):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: err.Error()}})
	case errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "password", Message: err.Error()}})
	case errors.Is(err, service.ErrNameRequired):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})
	case errors.Is(err, service.ErrCrewNameRequired):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})
	case errors.Is(err, service.ErrNoteTextRequired):
		return model.NewValidationError([]model.FieldError{{Field: "text", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidDie):
		return model.NewValidationError([]model.FieldError{{Field: "sides", Message: err.Error()}})
	case errors.Is(err, service.ErrPostTitleRequired):
		return model.NewValidationError([]model.FieldError{{Field: "title", Message: err.Error()}})
	case errors.Is(err, service.ErrPostContentRequired),
		errors.Is(err, service.ErrCommentContentRequired):
		return model.NewValidationError([]model.FieldError{{Field: "content", Message: err.Error()}})

	// ===== Limit/capacity errors → 422 =====
	case errors.Is(err, service.ErrCrewFull),
		errors.Is(err, service.ErrCharacterLimitReached):
		return model.NewValidationError([]model.FieldError{{Field: "limit", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
