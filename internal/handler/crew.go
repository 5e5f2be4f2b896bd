package handler

import (
	"net/http"

	"github.com/saltwind/grandline/api/internal/middleware"
	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/service"
)

// CrewHandler handles crew HTTP requests
type CrewHandler struct {
	svc *service.CrewService
}

// NewCrewHandler creates a new crew handler
func NewCrewHandler(svc *service.CrewService) *CrewHandler {
	return &CrewHandler{svc: svc}
}

// List handles GET /v1/crews - list all active crews
func (h *CrewHandler) List(w http.ResponseWriter, r *http.Request) {
	crews, err := h.svc.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, crews, nil)
}

// Create handles POST /v1/crews - found a new crew with the caller as captain
func (h *CrewHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateCrewRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	crew, err := h.svc.Create(ctx, userID, middleware.GetUserName(ctx), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, crew, nil)
}

// Mine handles GET /v1/crews/mine - the caller's current crew, if any
func (h *CrewHandler) Mine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	crew, err := h.svc.MyCrew(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	// Crewless is not an error; the data is simply null
	WriteData(w, http.StatusOK, crew, nil)
}

// Get handles GET /v1/crews/{crewId} - crew details
func (h *CrewHandler) Get(w http.ResponseWriter, r *http.Request) {
	crewID := r.PathValue("crewId")
	if crewID == "" {
		WriteError(w, model.NewBadRequestError("crew ID required"))
		return
	}

	crew, err := h.svc.Get(r.Context(), crewID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, crew, nil)
}

// Join handles POST /v1/crews/{crewId}/join
func (h *CrewHandler) Join(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	crewID := r.PathValue("crewId")
	if crewID == "" {
		WriteError(w, model.NewBadRequestError("crew ID required"))
		return
	}

	var req model.JoinCrewRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	crew, err := h.svc.Join(ctx, crewID, userID, middleware.GetUserName(ctx), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, crew, nil)
}

// Leave handles POST /v1/crews/{crewId}/leave
func (h *CrewHandler) Leave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	crewID := r.PathValue("crewId")
	if crewID == "" {
		WriteError(w, model.NewBadRequestError("crew ID required"))
		return
	}

	if err := h.svc.Leave(ctx, crewID, userID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// StartSession handles POST /v1/crews/{crewId}/start-session - captain starts a
// combat session seeded from the crew roster
func (h *CrewHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	crewID := r.PathValue("crewId")
	if crewID == "" {
		WriteError(w, model.NewBadRequestError("crew ID required"))
		return
	}

	sessionID, err := h.svc.StartSession(ctx, crewID, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, model.StartSessionResponse{SessionID: sessionID}, map[string]string{
		"session": "/v1/sessions/" + sessionID,
	})
}
