package services

import (
	"fmt"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
}

// UserService handles profile reads and edits, and account removal.
type UserService struct {
	userRepo    repositories.UserRepository
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	sessionRepo repositories.SessionRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, sessionRepo repositories.SessionRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		sessionRepo: sessionRepo,
	}
}

// GetByUsername retrieves a user by username
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(username)
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(id int) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateProfile applies a profile edit to the user's own record. Username
// and email uniqueness are enforced by the repository.
func (s *UserService) UpdateProfile(userID int, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	updated := *user
	if update.Username != "" {
		updated.Username = update.Username
	}
	if update.Email != "" {
		updated.Email = update.Email
	}
	updated.FirstName = update.FirstName
	updated.LastName = update.LastName
	updated.Bio = update.Bio

	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %v", err)
	}

	if err := s.userRepo.Update(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAccount removes a user together with their sessions, comments and
// posts (including comments under those posts).
func (s *UserService) DeleteAccount(userID int) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return err
	}

	if err := s.sessionRepo.DeleteByUser(userID); err != nil {
		return fmt.Errorf("failed to delete sessions: %v", err)
	}

	comments, err := s.commentRepo.ListByAuthor(userID)
	if err != nil {
		return fmt.Errorf("failed to list comments: %v", err)
	}
	for _, comment := range comments {
		if err := s.commentRepo.Delete(comment.ID); err != nil {
			return fmt.Errorf("failed to delete comment %d: %v", comment.ID, err)
		}
	}

	posts, err := s.postRepo.ListByAuthor(userID)
	if err != nil {
		return fmt.Errorf("failed to list posts: %v", err)
	}
	for _, post := range posts {
		if err := s.commentRepo.DeleteByPost(post.ID); err != nil {
			return fmt.Errorf("failed to delete comments for post %d: %v", post.ID, err)
		}
		if err := s.postRepo.Delete(post.ID); err != nil {
			return fmt.Errorf("failed to delete post %d: %v", post.ID, err)
		}
	}

	return s.userRepo.Delete(userID)
}
