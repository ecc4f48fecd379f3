package repositories

import (
	"testing"
	"time"

	"inkwell/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPost(authorID int, title string) *models.Post {
	now := time.Now()
	return &models.Post{
		AuthorID:    authorID,
		Title:       title,
		Content:     "Content long enough to be a real post",
		IsPublished: true,
		PublishedAt: now,
		CreatedAt:   now,
	}
}

func TestPostRepositoryCreateAndGet(t *testing.T) {
	repo := NewBadgerPostRepository(testDB(t))

	post := newTestPost(1, "First post")
	require.NoError(t, repo.Create(post))
	assert.Equal(t, 1, post.ID)

	got, err := repo.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "First post", got.Title)
	assert.Equal(t, 1, got.AuthorID)

	_, err = repo.GetByID(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepositoryList(t *testing.T) {
	repo := NewBadgerPostRepository(testDB(t))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(newTestPost(1, "Post by author one")))
	}
	p := newTestPost(2, "Post by author two")
	p.CategoryID = 5
	require.NoError(t, repo.Create(p))

	t.Run("all", func(t *testing.T) {
		posts, err := repo.ListAll()
		require.NoError(t, err)
		assert.Len(t, posts, 4)
	})

	t.Run("by author", func(t *testing.T) {
		posts, err := repo.ListByAuthor(1)
		require.NoError(t, err)
		assert.Len(t, posts, 3)

		posts, err = repo.ListByAuthor(3)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("by category", func(t *testing.T) {
		posts, err := repo.ListByCategory(5)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, 2, posts[0].AuthorID)
	})
}

func TestPostRepositoryUpdate(t *testing.T) {
	repo := NewBadgerPostRepository(testDB(t))

	post := newTestPost(1, "Original title")
	require.NoError(t, repo.Create(post))

	post.Title = "Updated title"
	require.NoError(t, repo.Update(post))

	got, err := repo.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated title", got.Title)

	ghost := newTestPost(1, "Ghost post")
	ghost.ID = 999
	assert.ErrorIs(t, repo.Update(ghost), ErrNotFound)
}

func TestPostRepositoryDelete(t *testing.T) {
	repo := NewBadgerPostRepository(testDB(t))

	post := newTestPost(1, "Doomed post")
	require.NoError(t, repo.Create(post))

	require.NoError(t, repo.Delete(post.ID))
	_, err := repo.GetByID(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(post.ID), ErrNotFound)
}
