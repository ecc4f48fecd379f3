package repositories

import (
	"testing"
	"time"

	"inkwell/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(token string, userID int) *models.Session {
	return &models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
}

func TestSessionRepositoryCreateAndGet(t *testing.T) {
	repo := NewBadgerSessionRepository(testDB(t))

	session := newTestSession("tok-1", 7)
	require.NoError(t, repo.Create(session))

	got, err := repo.GetByToken("tok-1")
	require.NoError(t, err)
	assert.Equal(t, 7, got.UserID)

	_, err = repo.GetByToken("unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepositoryRejectsPastExpiry(t *testing.T) {
	repo := NewBadgerSessionRepository(testDB(t))

	session := newTestSession("tok-expired", 1)
	session.ExpiresAt = time.Now().Add(-time.Minute)
	assert.Error(t, repo.Create(session))
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo := NewBadgerSessionRepository(testDB(t))

	require.NoError(t, repo.Create(newTestSession("tok-del", 1)))
	require.NoError(t, repo.Delete("tok-del"))

	_, err := repo.GetByToken("tok-del")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepositoryDeleteByUser(t *testing.T) {
	repo := NewBadgerSessionRepository(testDB(t))

	require.NoError(t, repo.Create(newTestSession("tok-a", 1)))
	require.NoError(t, repo.Create(newTestSession("tok-b", 1)))
	require.NoError(t, repo.Create(newTestSession("tok-c", 2)))

	require.NoError(t, repo.DeleteByUser(1))

	_, err := repo.GetByToken("tok-a")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByToken("tok-b")
	assert.ErrorIs(t, err, ErrNotFound)

	survivor, err := repo.GetByToken("tok-c")
	require.NoError(t, err)
	assert.Equal(t, 2, survivor.UserID)
}
