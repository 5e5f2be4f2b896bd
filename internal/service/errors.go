package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrNameRequired       = errors.New("name is required")
)

// ===== Token Errors =====
var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// ===== Character Errors =====
var (
	ErrCharacterNotFound     = errors.New("character not found")
	ErrCharacterLimitReached = errors.New("maximum number of characters reached")
)

// ===== Crew Errors =====
var (
	ErrCrewNotFound      = errors.New("crew not found")
	ErrCrewNameRequired  = errors.New("crew name is required")
	ErrCrewFull          = errors.New("crew has reached maximum member limit")
	ErrAlreadyCrewMember = errors.New("already a member of this crew")
	ErrNotCrewMember     = errors.New("not a member of this crew")
	ErrNotCaptain        = errors.New("only the captain can start sessions")
)

// ===== Session Errors =====
var (
	ErrCombatantNotFound = errors.New("combatant not found")
	ErrInvalidDie        = errors.New("die must have at least 2 sides")
	ErrNoteTextRequired  = errors.New("note text is required")
)

// ===== Forum Errors =====
var (
	ErrPostNotFound           = errors.New("post not found")
	ErrPostTitleRequired      = errors.New("post title is required")
	ErrPostContentRequired    = errors.New("post content is required")
	ErrCommentContentRequired = errors.New("comment content is required")
	ErrNotPostAuthor          = errors.New("not the author of this post")
)
