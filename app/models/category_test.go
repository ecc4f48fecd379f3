package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validCategory() *Category {
	return &Category{
		Slug:        "travel-notes",
		Title:       "Travel notes",
		IsPublished: true,
		CreatedAt:   time.Now(),
	}
}

func TestCategoryValidate(t *testing.T) {
	t.Run("valid category", func(t *testing.T) {
		assert.NoError(t, validCategory().Validate())
	})

	t.Run("missing slug", func(t *testing.T) {
		c := validCategory()
		c.Slug = ""
		assert.Error(t, c.Validate())
	})

	t.Run("slug with uppercase", func(t *testing.T) {
		c := validCategory()
		c.Slug = "Travel"
		assert.Error(t, c.Validate())
	})

	t.Run("slug with spaces", func(t *testing.T) {
		c := validCategory()
		c.Slug = "travel notes"
		assert.Error(t, c.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		c := validCategory()
		c.Title = ""
		assert.Error(t, c.Validate())
	})
}

func TestCategoryBeforeCreate(t *testing.T) {
	c := &Category{}
	c.BeforeCreate()
	assert.False(t, c.CreatedAt.IsZero())
}
