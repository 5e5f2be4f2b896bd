package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/store"
)

// ForumRepository defines the interface for forum content storage
type ForumRepository interface {
	SavePost(ctx context.Context, post *model.ForumPost) error
	GetPost(ctx context.Context, postID string) (*model.ForumPost, error)
	ListPosts(ctx context.Context) ([]*model.ForumPost, error)
	DeletePost(ctx context.Context, postID string) error
	SaveComment(ctx context.Context, comment *model.ForumComment) error
	ListComments(ctx context.Context, postID string) ([]*model.ForumComment, error)
	GetLike(ctx context.Context, postID, userID string) (*model.ForumLike, error)
	SaveLike(ctx context.Context, like *model.ForumLike) error
	DeleteLike(ctx context.Context, postID, userID string) error
}

// ForumService handles community forum operations
type ForumService struct {
	repo ForumRepository
}

// ForumServiceConfig holds configuration for the forum service
type ForumServiceConfig struct {
	Repo ForumRepository
}

// NewForumService creates a new forum service
func NewForumService(cfg ForumServiceConfig) *ForumService {
	return &ForumService{repo: cfg.Repo}
}

// ListPosts returns every post, newest first
func (s *ForumService) ListPosts(ctx context.Context) ([]*model.ForumPost, error) {
	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedOn.After(posts[j].CreatedOn)
	})
	return posts, nil
}

// GetPost returns one post with its comments oldest first. Reading a
// post counts as a view.
func (s *ForumService) GetPost(ctx context.Context, postID string) (*model.ForumPost, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.Views++
	if err := s.repo.SavePost(ctx, post); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedOn.Before(comments[j].CreatedOn)
	})

	post.Comments = make([]model.ForumComment, 0, len(comments))
	for _, comment := range comments {
		post.Comments = append(post.Comments, *comment)
	}
	return post, nil
}

// CreatePost publishes a new post
func (s *ForumService) CreatePost(ctx context.Context, authorID, authorName string, req model.CreateForumPostRequest) (*model.ForumPost, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" {
		return nil, ErrPostTitleRequired
	}
	if content == "" {
		return nil, ErrPostContentRequired
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = model.DefaultForumCategory
	}

	post := &model.ForumPost{
		ID:         uuid.NewString(),
		AuthorID:   authorID,
		AuthorName: authorName,
		Title:      title,
		Content:    content,
		Category:   category,
		CreatedOn:  time.Now(),
	}
	if err := s.repo.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost edits a post; only the author may do so
func (s *ForumService) UpdatePost(ctx context.Context, postID, userID string, req model.UpdateForumPostRequest) (*model.ForumPost, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, ErrNotPostAuthor
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" {
		return nil, ErrPostTitleRequired
	}
	if content == "" {
		return nil, ErrPostContentRequired
	}

	post.Title = title
	post.Content = content
	if category := strings.TrimSpace(req.Category); category != "" {
		post.Category = category
	}
	now := time.Now()
	post.UpdatedOn = &now

	if err := s.repo.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post with its comments and likes; only the author
// may do so
func (s *ForumService) DeletePost(ctx context.Context, postID, userID string) error {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return ErrNotPostAuthor
	}
	return s.repo.DeletePost(ctx, postID)
}

// ToggleLike flips the caller's like on a post and returns the new count
func (s *ForumService) ToggleLike(ctx context.Context, postID, userID string) (*model.LikeResponse, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	_, err = s.repo.GetLike(ctx, postID, userID)
	switch {
	case err == nil:
		if err := s.repo.DeleteLike(ctx, postID, userID); err != nil {
			return nil, err
		}
		if post.Likes > 0 {
			post.Likes--
		}
		if err := s.repo.SavePost(ctx, post); err != nil {
			return nil, err
		}
		return &model.LikeResponse{Liked: false, Likes: post.Likes}, nil

	case errors.Is(err, store.ErrNotFound):
		like := &model.ForumLike{
			UserID:    userID,
			PostID:    postID,
			CreatedOn: time.Now(),
		}
		if err := s.repo.SaveLike(ctx, like); err != nil {
			return nil, err
		}
		post.Likes++
		if err := s.repo.SavePost(ctx, post); err != nil {
			return nil, err
		}
		return &model.LikeResponse{Liked: true, Likes: post.Likes}, nil

	default:
		return nil, err
	}
}

// AddComment attaches a comment to a post
func (s *ForumService) AddComment(ctx context.Context, postID, authorID, authorName string, req model.AddCommentRequest) (*model.ForumComment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrCommentContentRequired
	}

	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &model.ForumComment{
		ID:         uuid.NewString(),
		PostID:     postID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
		CreatedOn:  time.Now(),
	}
	if err := s.repo.SaveComment(ctx, comment); err != nil {
		return nil, err
	}

	post.CommentsCount++
	if err := s.repo.SavePost(ctx, post); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ForumService) loadPost(ctx context.Context, postID string) (*model.ForumPost, error) {
	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}
