package handler

import (
	"net/http"

	"github.com/saltwind/grandline/api/internal/middleware"
	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/service"
)

// CharacterHandler handles character sheet HTTP requests
type CharacterHandler struct {
	svc *service.CharacterService
}

// NewCharacterHandler creates a new character handler
func NewCharacterHandler(svc *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{svc: svc}
}

// List handles GET /v1/characters - list the caller's characters
func (h *CharacterHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	characters, err := h.svc.List(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, characters, nil)
}

// Get handles GET /v1/characters/{characterId} - fetch one character sheet
func (h *CharacterHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	characterID := r.PathValue("characterId")
	if characterID == "" {
		WriteError(w, model.NewBadRequestError("character ID required"))
		return
	}

	character, err := h.svc.Get(ctx, userID, characterID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, character, nil)
}

// Save handles POST /v1/characters - create or overwrite a character sheet.
// A body without an id creates; a body carrying an id overwrites that sheet.
func (h *CharacterHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var character model.Character
	if err := DecodeJSON(r, &character); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if fieldErrors := character.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	created := character.ID == ""

	saved, err := h.svc.Save(ctx, userID, &character)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	WriteData(w, status, saved, nil)
}

// Update handles PUT /v1/characters/{characterId} - overwrite a character
// sheet at a known id. The path id wins over any id in the body.
func (h *CharacterHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	characterID := r.PathValue("characterId")
	if characterID == "" {
		WriteError(w, model.NewBadRequestError("character ID required"))
		return
	}

	var character model.Character
	if err := DecodeJSON(r, &character); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	character.ID = characterID

	if fieldErrors := character.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	saved, err := h.svc.Save(ctx, userID, &character)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, saved, nil)
}

// Delete handles DELETE /v1/characters/{characterId}
func (h *CharacterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	characterID := r.PathValue("characterId")
	if characterID == "" {
		WriteError(w, model.NewBadRequestError("character ID required"))
		return
	}

	if err := h.svc.Delete(ctx, userID, characterID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
