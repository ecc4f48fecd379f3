package repositories

import (
	"testing"
	"time"

	"inkwell/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCategory(slug, title string) *models.Category {
	return &models.Category{
		Slug:        slug,
		Title:       title,
		Description: "about " + title,
		IsPublished: true,
		CreatedAt:   time.Now(),
	}
}

func TestCategoryRepositoryCreateAndGet(t *testing.T) {
	repo := NewBadgerCategoryRepository(testDB(t))

	category := newTestCategory("travel", "Travel")
	require.NoError(t, repo.Create(category))
	assert.Equal(t, 1, category.ID)

	byID, err := repo.GetByID(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Travel", byID.Title)

	bySlug, err := repo.GetBySlug("travel")
	require.NoError(t, err)
	assert.Equal(t, category.ID, bySlug.ID)

	_, err = repo.GetBySlug("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryRepositoryDuplicateSlug(t *testing.T) {
	repo := NewBadgerCategoryRepository(testDB(t))

	require.NoError(t, repo.Create(newTestCategory("food", "Food")))
	assert.ErrorIs(t, repo.Create(newTestCategory("food", "Also Food")), ErrDuplicate)
}

func TestCategoryRepositoryList(t *testing.T) {
	repo := NewBadgerCategoryRepository(testDB(t))

	require.NoError(t, repo.Create(newTestCategory("a", "A")))
	require.NoError(t, repo.Create(newTestCategory("b", "B")))

	categories, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestCategoryRepositoryUpdateMovesSlugIndex(t *testing.T) {
	repo := NewBadgerCategoryRepository(testDB(t))

	category := newTestCategory("old-slug", "Old")
	require.NoError(t, repo.Create(category))

	category.Slug = "new-slug"
	category.Title = "New"
	require.NoError(t, repo.Update(category))

	got, err := repo.GetBySlug("new-slug")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)

	_, err = repo.GetBySlug("old-slug")
	assert.ErrorIs(t, err, ErrNotFound)

	// The freed slug can be claimed again.
	require.NoError(t, repo.Create(newTestCategory("old-slug", "Reclaimed")))
}

func TestCategoryRepositoryUpdateSlugConflict(t *testing.T) {
	repo := NewBadgerCategoryRepository(testDB(t))

	require.NoError(t, repo.Create(newTestCategory("first", "First")))
	second := newTestCategory("second", "Second")
	require.NoError(t, repo.Create(second))

	second.Slug = "first"
	assert.ErrorIs(t, repo.Update(second), ErrDuplicate)
}

func TestCategoryRepositoryDelete(t *testing.T) {
	repo := NewBadgerCategoryRepository(testDB(t))

	category := newTestCategory("gone", "Gone")
	require.NoError(t, repo.Create(category))

	require.NoError(t, repo.Delete(category.ID))
	_, err := repo.GetByID(category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetBySlug("gone")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(category.ID), ErrNotFound)
}
