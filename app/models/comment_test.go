package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validComment() *Comment {
	return &Comment{
		PostID:    1,
		AuthorID:  1,
		Content:   "a comment",
		CreatedAt: time.Now(),
	}
}

func TestCommentValidate(t *testing.T) {
	t.Run("valid comment", func(t *testing.T) {
		assert.NoError(t, validComment().Validate())
	})

	t.Run("missing post", func(t *testing.T) {
		c := validComment()
		c.PostID = 0
		assert.Error(t, c.Validate())
	})

	t.Run("missing author", func(t *testing.T) {
		c := validComment()
		c.AuthorID = 0
		assert.Error(t, c.Validate())
	})

	t.Run("empty content", func(t *testing.T) {
		c := validComment()
		c.Content = ""
		assert.Error(t, c.Validate())
	})

	t.Run("content too long", func(t *testing.T) {
		c := validComment()
		c.Content = strings.Repeat("x", 1001)
		assert.Error(t, c.Validate())
	})
}

func TestCommentBeforeCreate(t *testing.T) {
	c := &Comment{}
	c.BeforeCreate()
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCommentSetPost(t *testing.T) {
	c := validComment()
	assert.Error(t, c.SetPost(nil))

	p := validPost()
	p.ID = 42
	assert.NoError(t, c.SetPost(p))
	assert.Equal(t, 42, c.PostID)
}
