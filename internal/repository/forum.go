package repository

import (
	"context"
	"fmt"

	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/store"
)

// ForumRepository stores forum content under forum:post:{postID},
// forum:comment:{commentID}, and forum:like:{postID}:{userID}.
type ForumRepository struct {
	store store.Store
}

// NewForumRepository creates a new forum repository
func NewForumRepository(s store.Store) *ForumRepository {
	return &ForumRepository{store: s}
}

func postKey(postID string) string {
	return "forum:post:" + postID
}

func commentKey(commentID string) string {
	return "forum:comment:" + commentID
}

func likeKey(postID, userID string) string {
	return fmt.Sprintf("forum:like:%s:%s", postID, userID)
}

func likePrefix(postID string) string {
	return fmt.Sprintf("forum:like:%s:", postID)
}

// SavePost writes the whole post document
func (r *ForumRepository) SavePost(ctx context.Context, post *model.ForumPost) error {
	return r.store.Set(ctx, postKey(post.ID), post)
}

// GetPost loads one post. Returns store.ErrNotFound when absent.
func (r *ForumRepository) GetPost(ctx context.Context, postID string) (*model.ForumPost, error) {
	var post model.ForumPost
	if err := r.store.Get(ctx, postKey(postID), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts loads every post
func (r *ForumRepository) ListPosts(ctx context.Context) ([]*model.ForumPost, error) {
	entries, err := r.store.ListByPrefix(ctx, "forum:post:")
	if err != nil {
		return nil, err
	}

	posts := make([]*model.ForumPost, 0, len(entries))
	for _, entry := range entries {
		var post model.ForumPost
		if err := entry.Decode(&post); err != nil {
			return nil, fmt.Errorf("decode %q: %w", entry.Key, err)
		}
		posts = append(posts, &post)
	}
	return posts, nil
}

// DeletePost removes a post together with its comments and likes.
// The multi-delete is not atomic; a failure can leave orphans behind.
func (r *ForumRepository) DeletePost(ctx context.Context, postID string) error {
	comments, err := r.ListComments(ctx, postID)
	if err != nil {
		return err
	}

	keys := []string{postKey(postID)}
	for _, comment := range comments {
		keys = append(keys, commentKey(comment.ID))
	}

	likes, err := r.store.ListByPrefix(ctx, likePrefix(postID))
	if err != nil {
		return err
	}
	for _, like := range likes {
		keys = append(keys, like.Key)
	}

	return r.store.DeleteMany(ctx, keys)
}

// SaveComment writes the whole comment document
func (r *ForumRepository) SaveComment(ctx context.Context, comment *model.ForumComment) error {
	return r.store.Set(ctx, commentKey(comment.ID), comment)
}

// ListComments loads every comment attached to the given post
func (r *ForumRepository) ListComments(ctx context.Context, postID string) ([]*model.ForumComment, error) {
	entries, err := r.store.ListByPrefix(ctx, "forum:comment:")
	if err != nil {
		return nil, err
	}

	comments := make([]*model.ForumComment, 0)
	for _, entry := range entries {
		var comment model.ForumComment
		if err := entry.Decode(&comment); err != nil {
			return nil, fmt.Errorf("decode %q: %w", entry.Key, err)
		}
		if comment.PostID == postID {
			comments = append(comments, &comment)
		}
	}
	return comments, nil
}

// GetLike loads a user's like on a post.
// Returns store.ErrNotFound when the user has not liked the post.
func (r *ForumRepository) GetLike(ctx context.Context, postID, userID string) (*model.ForumLike, error) {
	var like model.ForumLike
	if err := r.store.Get(ctx, likeKey(postID, userID), &like); err != nil {
		return nil, err
	}
	return &like, nil
}

// SaveLike records a user's like on a post
func (r *ForumRepository) SaveLike(ctx context.Context, like *model.ForumLike) error {
	return r.store.Set(ctx, likeKey(like.PostID, like.UserID), like)
}

// DeleteLike removes a user's like on a post
func (r *ForumRepository) DeleteLike(ctx context.Context, postID, userID string) error {
	return r.store.Delete(ctx, likeKey(postID, userID))
}
