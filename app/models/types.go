package models

import "time"

// User represents a registered account together with its profile attributes.
// PasswordHash is stored with the record but must be stripped with Sanitize
// before the user is handed to a client.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Username     string    `json:"username" validate:"required,min=3,max=50"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"password_hash,omitempty" validate:"-"`
	FirstName    string    `json:"first_name,omitempty" validate:"max=50"`
	LastName     string    `json:"last_name,omitempty" validate:"max=50"`
	Bio          string    `json:"bio,omitempty" validate:"max=500"`
	CreatedAt    time.Time `json:"created_at"`
}

// Category groups posts under a URL slug. Unpublished categories hide
// every post assigned to them.
type Category struct {
	ID          int       `json:"id" validate:"gte=0"`
	Slug        string    `json:"slug" validate:"required,min=2,max=50"`
	Title       string    `json:"title" validate:"required,min=3,max=100"`
	Description string    `json:"description,omitempty" validate:"max=500"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// Post represents an authored entry. PublishedAt in the future keeps the
// post hidden from everyone but its author until that time passes.
type Post struct {
	ID          int       `json:"id" validate:"gte=0"`
	AuthorID    int       `json:"author_id" validate:"required,gt=0"`
	CategoryID  int       `json:"category_id,omitempty" validate:"gte=0"`
	Title       string    `json:"title" validate:"required,min=3,max=100"`
	Content     string    `json:"content" validate:"required,min=10"`
	Location    string    `json:"location,omitempty" validate:"max=100"`
	IsPublished bool      `json:"is_published"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`

	// Derived fields, populated by the service layer and never persisted
	// as part of the post record.
	Author       string     `json:"author,omitempty"`
	Category     *Category  `json:"category,omitempty"`
	CommentCount int        `json:"comment_count"`
	Comments     []*Comment `json:"comments,omitempty"`
}

// Comment represents a comment on a post.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostID    int       `json:"post_id" validate:"required,gt=0"`
	AuthorID  int       `json:"author_id" validate:"required,gt=0"`
	Content   string    `json:"content" validate:"required,min=1,max=1000"`
	CreatedAt time.Time `json:"created_at"`

	// Author username, populated by the service layer.
	Author string `json:"author,omitempty"`
}

// Session is a server-side login session. The same record backs both the
// web cookie and API bearer tokens, so deleting it revokes both.
type Session struct {
	Token     string    `json:"token" validate:"required"`
	UserID    int       `json:"user_id" validate:"required,gt=0"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
