package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.PublishedAt.IsZero() {
		p.PublishedAt = now
	}
}

// VisibleAt reports whether the post itself is publicly visible at the
// given time. Category visibility is checked by the service layer, which
// has access to the category record.
func (p *Post) VisibleAt(now time.Time) bool {
	return p.IsPublished && !p.PublishedAt.After(now)
}

// AddComment attaches a comment to the post's derived comment list.
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.PostID = p.ID
	p.Comments = append(p.Comments, comment)
	p.CommentCount = len(p.Comments)
	return nil
}
