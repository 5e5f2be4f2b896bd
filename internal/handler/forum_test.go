package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/repository"
	"github.com/saltwind/grandline/api/internal/service"
	"github.com/saltwind/grandline/api/internal/store"
)

func newForumMux(t *testing.T) *http.ServeMux {
	t.Helper()

	svc := service.NewForumService(service.ForumServiceConfig{
		Repo: repository.NewForumRepository(store.NewMemoryStore()),
	})
	h := NewForumHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/forum/posts", h.ListPosts)
	mux.HandleFunc("POST /v1/forum/posts", h.CreatePost)
	mux.HandleFunc("GET /v1/forum/posts/{postId}", h.GetPost)
	mux.HandleFunc("PATCH /v1/forum/posts/{postId}", h.UpdatePost)
	mux.HandleFunc("DELETE /v1/forum/posts/{postId}", h.DeletePost)
	mux.HandleFunc("POST /v1/forum/posts/{postId}/like", h.ToggleLike)
	mux.HandleFunc("POST /v1/forum/posts/{postId}/comments", h.AddComment)
	return mux
}

func createPost(t *testing.T, mux *http.ServeMux, userID, title string) *model.ForumPost {
	t.Helper()

	req := asUser(jsonRequest(http.MethodPost, "/v1/forum/posts", model.CreateForumPostRequest{
		Title:   title,
		Content: "content of " + title,
	}), userID)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var post model.ForumPost
	decodeData(t, rec.Body.Bytes(), &post)
	return &post
}

func TestForumCreatePost_DefaultsCategory(t *testing.T) {
	t.Parallel()
	mux := newForumMux(t)

	post := createPost(t, mux, "user:1", "Grand Line charts")
	assert.Equal(t, model.DefaultForumCategory, post.Category)
	assert.Equal(t, "user:1", post.AuthorID)
	assert.Zero(t, post.Views)
}

func TestForumCreatePost_RequiresTitle(t *testing.T) {
	t.Parallel()
	mux := newForumMux(t)

	req := asUser(jsonRequest(http.MethodPost, "/v1/forum/posts", model.CreateForumPostRequest{
		Content: "no title",
	}), "user:1")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestForumGetPost_CountsViews(t *testing.T) {
	t.Parallel()
	mux := newForumMux(t)

	post := createPost(t, mux, "user:1", "Log Pose basics")

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/forum/posts/"+post.ID, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/forum/posts/"+post.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched model.ForumPost
	decodeData(t, rec.Body.Bytes(), &fetched)
	assert.Equal(t, 3, fetched.Views)
}

func TestForumGetPost_Unknown404(t *testing.T) {
	t.Parallel()
	mux := newForumMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/forum/posts/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestForumToggleLike_Toggles(t *testing.T) {
	t.Parallel()
	mux := newForumMux(t)

	post := createPost(t, mux, "user:1", "Best sea shanties")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, asUser(jsonRequest(http.MethodPost, "/v1/forum/posts/"+post.ID+"/like", nil), "user:2"))
	require.Equal(t, http.StatusOK, rec.Code)

	var liked model.LikeResponse
	decodeData(t, rec.Body.Bytes(), &liked)
	assert.True(t, liked.Liked)
	assert.Equal(t, 1, liked.Likes)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, asUser(jsonRequest(http.MethodPost, "/v1/forum/posts/"+post.ID+"/like", nil), "user:2"))
	require.Equal(t, http.StatusOK, rec.Code)

	decodeData(t, rec.Body.Bytes(), &liked)
	assert.False(t, liked.Liked)
	assert.Zero(t, liked.Likes)
}

func TestForumAddComment_OldestFirst(t *testing.T) {
	t.Parallel()
	mux := newForumMux(t)

	post := createPost(t, mux, "user:1", "Recruiting shipwrights")

	for _, text := range []string{"first", "second"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, asUser(jsonRequest(http.MethodPost, "/v1/forum/posts/"+post.ID+"/comments", model.AddCommentRequest{
			Content: text,
		}), "user:2"))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/forum/posts/"+post.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched model.ForumPost
	decodeData(t, rec.Body.Bytes(), &fetched)
	assert.Equal(t, 2, fetched.CommentsCount)
	require.Len(t, fetched.Comments, 2)
	assert.Equal(t, "first", fetched.Comments[0].Content)
	assert.Equal(t, "second", fetched.Comments[1].Content)
}

func TestForumUpdatePost_AuthorOnly(t *testing.T) {
	t.Parallel()
	mux := newForumMux(t)

	post := createPost(t, mux, "user:1", "Original title")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, asUser(jsonRequest(http.MethodPatch, "/v1/forum/posts/"+post.ID, model.UpdateForumPostRequest{
		Title:   "Hijacked",
		Content: "not yours",
	}), "user:2"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, asUser(jsonRequest(http.MethodPatch, "/v1/forum/posts/"+post.ID, model.UpdateForumPostRequest{
		Title:   "Edited title",
		Content: "edited content",
	}), "user:1"))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.ForumPost
	decodeData(t, rec.Body.Bytes(), &updated)
	assert.Equal(t, "Edited title", updated.Title)
	assert.NotNil(t, updated.UpdatedOn)
}

func TestForumDeletePost_CascadesAndLists(t *testing.T) {
	t.Parallel()
	mux := newForumMux(t)

	keep := createPost(t, mux, "user:1", "Keep me")
	gone := createPost(t, mux, "user:1", "Delete me")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, asUser(jsonRequest(http.MethodPost, "/v1/forum/posts/"+gone.ID+"/comments", model.AddCommentRequest{
		Content: "soon to vanish",
	}), "user:2"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodDelete, "/v1/forum/posts/"+gone.ID, nil), "user:2"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodDelete, "/v1/forum/posts/"+gone.ID, nil), "user:1"))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/forum/posts", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var posts []*model.ForumPost
	decodeData(t, rec.Body.Bytes(), &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, keep.ID, posts[0].ID)
}
