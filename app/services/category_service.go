package services

import (
	"fmt"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// CategoryService handles business logic for categories
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	posts        *PostService
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repositories.CategoryRepository, posts *PostService) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		posts:        posts,
	}
}

// CreateCategory creates a new category with validation
func (s *CategoryService) CreateCategory(category *models.Category) error {
	category.BeforeCreate()

	if err := category.Validate(); err != nil {
		return fmt.Errorf("invalid category: %v", err)
	}

	return s.categoryRepo.Create(category)
}

// GetBySlug retrieves a category by its slug
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	return s.categoryRepo.GetBySlug(slug)
}

// ListPublished retrieves all published categories
func (s *CategoryService) ListPublished() ([]*models.Category, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	published := make([]*models.Category, 0, len(categories))
	for _, category := range categories {
		if category.IsPublished {
			published = append(published, category)
		}
	}
	return published, nil
}

// UpdateCategory updates an existing category with validation
func (s *CategoryService) UpdateCategory(category *models.Category) error {
	existing, err := s.categoryRepo.GetByID(category.ID)
	if err != nil {
		return err
	}

	// Preserve creation time
	category.CreatedAt = existing.CreatedAt

	if err := category.Validate(); err != nil {
		return fmt.Errorf("invalid category: %v", err)
	}

	return s.categoryRepo.Update(category)
}

// DeleteCategory deletes a category, detaching it from its posts first
func (s *CategoryService) DeleteCategory(id int) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return err
	}

	if err := s.posts.DetachCategory(id); err != nil {
		return fmt.Errorf("failed to detach posts: %v", err)
	}
	return s.categoryRepo.Delete(id)
}
