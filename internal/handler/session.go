package handler

import (
	"net/http"

	"github.com/saltwind/grandline/api/internal/middleware"
	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/service"
)

// SessionHandler handles DM combat session HTTP requests
type SessionHandler struct {
	sessions *service.SessionService
	progress *service.ProgressService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *service.SessionService, progress *service.ProgressService) *SessionHandler {
	return &SessionHandler{sessions: sessions, progress: progress}
}

// RollResult is the response body for a die roll
type RollResult struct {
	Result  int            `json:"result"`
	Session *model.Session `json:"session"`
}

// Get handles GET /v1/sessions/{sessionId} - fetch a session, returning a
// fresh default one when nothing is stored under the id yet
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	session, err := h.sessions.Load(r.Context(), sessionID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, session, nil)
}

// Put handles PUT (and POST) /v1/sessions/{sessionId} - overwrite the
// whole session document, last write wins
func (h *SessionHandler) Put(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	var session model.Session
	if err := DecodeJSON(r, &session); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.sessions.Overwrite(r.Context(), sessionID, &session); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, &session, nil)
}

// AddPlayer handles POST /v1/sessions/{sessionId}/players
func (h *SessionHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	var req model.AddCombatantRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	session, err := h.sessions.AddPlayer(r.Context(), sessionID, req.Name)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, session, nil)
}

// UpdatePlayer handles PATCH /v1/sessions/{sessionId}/players/{playerId}
func (h *SessionHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	playerID := r.PathValue("playerId")
	if sessionID == "" || playerID == "" {
		WriteError(w, model.NewBadRequestError("session and player IDs required"))
		return
	}

	var update model.PlayerUpdate
	if err := DecodeJSON(r, &update); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	session, err := h.sessions.UpdatePlayer(r.Context(), sessionID, playerID, update)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, session, nil)
}

// RemovePlayer handles DELETE /v1/sessions/{sessionId}/players/{playerId}
func (h *SessionHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	playerID := r.PathValue("playerId")
	if sessionID == "" || playerID == "" {
		WriteError(w, model.NewBadRequestError("session and player IDs required"))
		return
	}

	session, err := h.sessions.RemovePlayer(r.Context(), sessionID, playerID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, session, nil)
}

// AddEnemy handles POST /v1/sessions/{sessionId}/enemies
func (h *SessionHandler) AddEnemy(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	var req model.AddCombatantRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	session, err := h.sessions.AddEnemy(r.Context(), sessionID, req.Name)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, session, nil)
}

// UpdateEnemy handles PATCH /v1/sessions/{sessionId}/enemies/{enemyId}
func (h *SessionHandler) UpdateEnemy(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	enemyID := r.PathValue("enemyId")
	if sessionID == "" || enemyID == "" {
		WriteError(w, model.NewBadRequestError("session and enemy IDs required"))
		return
	}

	var update model.EnemyUpdate
	if err := DecodeJSON(r, &update); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	session, err := h.sessions.UpdateEnemy(r.Context(), sessionID, enemyID, update)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, session, nil)
}

// RemoveEnemy handles DELETE /v1/sessions/{sessionId}/enemies/{enemyId}
func (h *SessionHandler) RemoveEnemy(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	enemyID := r.PathValue("enemyId")
	if sessionID == "" || enemyID == "" {
		WriteError(w, model.NewBadRequestError("session and enemy IDs required"))
		return
	}

	session, err := h.sessions.RemoveEnemy(r.Context(), sessionID, enemyID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, session, nil)
}

// SortInitiative handles POST /v1/sessions/{sessionId}/sort-initiative
func (h *SessionHandler) SortInitiative(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	session, err := h.sessions.SortInitiative(r.Context(), sessionID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, session, nil)
}

// AdvanceTurn handles POST /v1/sessions/{sessionId}/advance-turn
func (h *SessionHandler) AdvanceTurn(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	session, err := h.sessions.AdvanceTurn(r.Context(), sessionID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, session, nil)
}

// Roll handles POST /v1/sessions/{sessionId}/roll
func (h *SessionHandler) Roll(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	var req model.RollRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	session, result, err := h.sessions.Roll(r.Context(), sessionID, req.Sides)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, RollResult{Result: result, Session: session}, nil)
}

// AddNote handles POST /v1/sessions/{sessionId}/notes
func (h *SessionHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	var req model.AddNoteRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	session, err := h.sessions.AddNote(r.Context(), sessionID, req.Text)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, session, nil)
}

// SaveProgress handles POST /v1/sessions/{sessionId}/save-progress - fold
// the session outcome into the caller's matching character sheets
func (h *SessionHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		WriteError(w, model.NewBadRequestError("session ID required"))
		return
	}

	var req model.SaveProgressRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	updated, err := h.progress.SaveProgress(ctx, userID, sessionID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, model.SaveProgressResponse{Updated: updated}, nil)
}
