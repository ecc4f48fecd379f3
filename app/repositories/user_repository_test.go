package repositories

import (
	"testing"
	"time"

	"inkwell/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(username, email string) *models.User {
	return &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
}

func TestUserRepositoryCreate(t *testing.T) {
	repo := NewBadgerUserRepository(testDB(t))

	user := newTestUser("writer", "writer@example.com")
	require.NoError(t, repo.Create(user))
	assert.Equal(t, 1, user.ID)

	t.Run("duplicate username", func(t *testing.T) {
		dup := newTestUser("writer", "other@example.com")
		assert.ErrorIs(t, repo.Create(dup), ErrDuplicate)
	})

	t.Run("duplicate username different case", func(t *testing.T) {
		dup := newTestUser("Writer", "case@example.com")
		assert.ErrorIs(t, repo.Create(dup), ErrDuplicate)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := newTestUser("other", "writer@example.com")
		assert.ErrorIs(t, repo.Create(dup), ErrDuplicate)
	})
}

func TestUserRepositoryGet(t *testing.T) {
	repo := NewBadgerUserRepository(testDB(t))

	user := newTestUser("writer", "writer@example.com")
	require.NoError(t, repo.Create(user))

	t.Run("by ID", func(t *testing.T) {
		got, err := repo.GetByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "writer", got.Username)
	})

	t.Run("by username", func(t *testing.T) {
		got, err := repo.GetByUsername("writer")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("by email", func(t *testing.T) {
		got, err := repo.GetByEmail("writer@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.GetByID(999)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.GetByUsername("nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepositoryUpdate(t *testing.T) {
	repo := NewBadgerUserRepository(testDB(t))

	user := newTestUser("writer", "writer@example.com")
	require.NoError(t, repo.Create(user))
	other := newTestUser("reader", "reader@example.com")
	require.NoError(t, repo.Create(other))

	t.Run("rename moves the index", func(t *testing.T) {
		user.Username = "author"
		require.NoError(t, repo.Update(user))

		got, err := repo.GetByUsername("author")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		_, err = repo.GetByUsername("writer")
		assert.ErrorIs(t, err, ErrNotFound, "old username must be released")
	})

	t.Run("cannot take another user's email", func(t *testing.T) {
		user.Email = "reader@example.com"
		assert.ErrorIs(t, repo.Update(user), ErrDuplicate)
	})

	t.Run("missing user", func(t *testing.T) {
		ghost := newTestUser("ghost", "ghost@example.com")
		ghost.ID = 999
		assert.ErrorIs(t, repo.Update(ghost), ErrNotFound)
	})
}

func TestUserRepositoryDelete(t *testing.T) {
	repo := NewBadgerUserRepository(testDB(t))

	user := newTestUser("writer", "writer@example.com")
	require.NoError(t, repo.Create(user))

	require.NoError(t, repo.Delete(user.ID))

	_, err := repo.GetByID(user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Index keys must be released so the name can be reused.
	again := newTestUser("writer", "writer@example.com")
	assert.NoError(t, repo.Create(again))

	assert.ErrorIs(t, repo.Delete(999), ErrNotFound)
}
