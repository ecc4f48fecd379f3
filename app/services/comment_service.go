package services

import (
	"fmt"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	userRepo    repositories.UserRepository
	posts       *PostService
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository, posts *PostService) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		posts:       posts,
	}
}

// CreateComment creates a new comment. The post must exist and be visible
// to the commenting user.
func (s *CommentService) CreateComment(comment *models.Comment, authorID int) error {
	comment.AuthorID = authorID

	post, err := s.postRepo.GetByID(comment.PostID)
	if err != nil {
		return fmt.Errorf("post not found: %v", err)
	}
	if post.AuthorID != authorID {
		visible, err := s.posts.isVisible(post, time.Now())
		if err != nil {
			return err
		}
		if !visible {
			return repositories.ErrNotFound
		}
	}

	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %v", err)
	}

	return s.commentRepo.Create(comment)
}

// GetComment retrieves a comment by ID
func (s *CommentService) GetComment(id int) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if author, err := s.userRepo.GetByID(comment.AuthorID); err == nil {
		comment.Author = author.Username
	}
	return comment, nil
}

// ListPostComments retrieves all comments for a post, oldest first
func (s *CommentService) ListPostComments(postID int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, fmt.Errorf("post not found: %v", err)
	}

	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return nil, err
	}
	for _, comment := range comments {
		if author, err := s.userRepo.GetByID(comment.AuthorID); err == nil {
			comment.Author = author.Username
		}
	}
	return comments, nil
}

// UpdateComment updates an existing comment. Only its author may edit it.
func (s *CommentService) UpdateComment(comment *models.Comment, editorID int) error {
	existing, err := s.commentRepo.GetByID(comment.ID)
	if err != nil {
		return err
	}
	if existing.AuthorID != editorID {
		return ErrForbidden
	}

	// Preserve authorship, parent post and creation time
	comment.AuthorID = existing.AuthorID
	comment.PostID = existing.PostID
	comment.CreatedAt = existing.CreatedAt

	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %v", err)
	}

	return s.commentRepo.Update(comment)
}

// DeleteComment deletes a comment. Only its author may delete it.
func (s *CommentService) DeleteComment(id, editorID int) error {
	existing, err := s.commentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.AuthorID != editorID {
		return ErrForbidden
	}

	return s.commentRepo.Delete(id)
}
