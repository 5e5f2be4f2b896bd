package handler

import (
	"net/http"

	"github.com/saltwind/grandline/api/internal/middleware"
	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/service"
)

// ForumHandler handles forum HTTP requests
type ForumHandler struct {
	svc *service.ForumService
}

// NewForumHandler creates a new forum handler
func NewForumHandler(svc *service.ForumService) *ForumHandler {
	return &ForumHandler{svc: svc}
}

// ListPosts handles GET /v1/forum/posts - all posts, newest first
func (h *ForumHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPosts(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, posts, nil)
}

// GetPost handles GET /v1/forum/posts/{postId} - one post with its comments.
// Reading a post counts a view.
func (h *ForumHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postId")
	if postID == "" {
		WriteError(w, model.NewBadRequestError("post ID required"))
		return
	}

	post, err := h.svc.GetPost(r.Context(), postID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, post, nil)
}

// CreatePost handles POST /v1/forum/posts
func (h *ForumHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateForumPostRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	post, err := h.svc.CreatePost(ctx, userID, middleware.GetUserName(ctx), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, post, nil)
}

// UpdatePost handles PATCH /v1/forum/posts/{postId} - author-only edit
func (h *ForumHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	postID := r.PathValue("postId")
	if postID == "" {
		WriteError(w, model.NewBadRequestError("post ID required"))
		return
	}

	var req model.UpdateForumPostRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	post, err := h.svc.UpdatePost(ctx, postID, userID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, post, nil)
}

// DeletePost handles DELETE /v1/forum/posts/{postId} - author-only delete,
// cascades to comments and likes
func (h *ForumHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	postID := r.PathValue("postId")
	if postID == "" {
		WriteError(w, model.NewBadRequestError("post ID required"))
		return
	}

	if err := h.svc.DeletePost(ctx, postID, userID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// ToggleLike handles POST /v1/forum/posts/{postId}/like
func (h *ForumHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	postID := r.PathValue("postId")
	if postID == "" {
		WriteError(w, model.NewBadRequestError("post ID required"))
		return
	}

	result, err := h.svc.ToggleLike(ctx, postID, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result, nil)
}

// AddComment handles POST /v1/forum/posts/{postId}/comments
func (h *ForumHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	postID := r.PathValue("postId")
	if postID == "" {
		WriteError(w, model.NewBadRequestError("post ID required"))
		return
	}

	var req model.AddCommentRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	comment, err := h.svc.AddComment(ctx, postID, userID, middleware.GetUserName(ctx), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, comment, nil)
}
