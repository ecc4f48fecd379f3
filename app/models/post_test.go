package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validPost() *Post {
	now := time.Now()
	return &Post{
		AuthorID:    1,
		Title:       "A proper title",
		Content:     "Content long enough to pass validation",
		IsPublished: true,
		PublishedAt: now,
		CreatedAt:   now,
	}
}

func TestPostValidate(t *testing.T) {
	t.Run("valid post", func(t *testing.T) {
		assert.NoError(t, validPost().Validate())
	})

	t.Run("missing author", func(t *testing.T) {
		p := validPost()
		p.AuthorID = 0
		assert.Error(t, p.Validate())
	})

	t.Run("title too short", func(t *testing.T) {
		p := validPost()
		p.Title = "ab"
		assert.Error(t, p.Validate())
	})

	t.Run("content too short", func(t *testing.T) {
		p := validPost()
		p.Content = "short"
		assert.Error(t, p.Validate())
	})

	t.Run("zero created_at", func(t *testing.T) {
		p := validPost()
		p.CreatedAt = time.Time{}
		assert.Error(t, p.Validate())
	})
}

func TestPostBeforeCreate(t *testing.T) {
	p := &Post{}
	p.BeforeCreate()

	assert.False(t, p.CreatedAt.IsZero())
	assert.False(t, p.PublishedAt.IsZero())

	scheduled := time.Now().Add(time.Hour)
	p2 := &Post{PublishedAt: scheduled}
	p2.BeforeCreate()
	assert.Equal(t, scheduled, p2.PublishedAt, "an explicit publish time must survive")
}

func TestPostVisibleAt(t *testing.T) {
	p := validPost()
	now := p.PublishedAt

	// Visibility is inclusive of the publish instant (pub_date <= now).
	assert.True(t, p.VisibleAt(now))

	p.IsPublished = false
	assert.False(t, p.VisibleAt(now), "unpublished posts are hidden")

	p.IsPublished = true
	p.PublishedAt = now.Add(time.Hour)
	assert.False(t, p.VisibleAt(now), "scheduled posts stay hidden until due")
	assert.True(t, p.VisibleAt(now.Add(2*time.Hour)))
}

func TestPostAddComment(t *testing.T) {
	p := validPost()
	p.ID = 7

	assert.Error(t, p.AddComment(nil))

	c := &Comment{AuthorID: 2, Content: "nice"}
	assert.NoError(t, p.AddComment(c))
	assert.Equal(t, 7, c.PostID)
	assert.Equal(t, 1, p.CommentCount)
}
