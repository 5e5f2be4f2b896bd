package model

import "time"

// ForumPost represents a community forum post
type ForumPost struct {
	ID            string         `json:"id"`
	AuthorID      string         `json:"author_id"`
	AuthorName    string         `json:"author_name"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	Category      string         `json:"category"`
	Likes         int            `json:"likes"`
	CommentsCount int            `json:"comments_count"`
	Views         int            `json:"views"`
	Comments      []ForumComment `json:"comments,omitempty"` // Populated on single-post reads
	CreatedOn     time.Time      `json:"created_on"`
	UpdatedOn     *time.Time     `json:"updated_on,omitempty"`
}

// ForumComment represents a comment on a forum post
type ForumComment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedOn  time.Time `json:"created_on"`
}

// ForumLike marks that a user liked a post
type ForumLike struct {
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	CreatedOn time.Time `json:"created_on"`
}

// Forum constraints
const (
	DefaultForumCategory    = "general"
	MaxPostTitleLength      = 200
	MaxPostContentLength    = 10000
	MaxCommentContentLength = 2000
)

// CreateForumPostRequest represents a request to create a post
type CreateForumPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

// UpdateForumPostRequest represents a request to edit an own post
type UpdateForumPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

// AddCommentRequest represents a request to comment on a post
type AddCommentRequest struct {
	Content string `json:"content"`
}

// LikeResponse returns the post's like count after a toggle
type LikeResponse struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}
