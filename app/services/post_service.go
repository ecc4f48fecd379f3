package services

import (
	"fmt"
	"sort"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// PostService handles business logic for posts: visibility rules,
// feed ordering, pagination and ownership checks.
type PostService struct {
	postRepo     repositories.PostRepository
	commentRepo  repositories.CommentRepository
	categoryRepo repositories.CategoryRepository
	userRepo     repositories.UserRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, categoryRepo repositories.CategoryRepository, userRepo repositories.UserRepository) *PostService {
	return &PostService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// CreatePost creates a new post with validation. The author comes from the
// authenticated request, never from the payload.
func (s *PostService) CreatePost(post *models.Post, authorID int) error {
	post.AuthorID = authorID
	post.BeforeCreate()

	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %v", err)
	}

	if post.CategoryID != 0 {
		if _, err := s.categoryRepo.GetByID(post.CategoryID); err != nil {
			return fmt.Errorf("category not found: %v", err)
		}
	}

	return s.postRepo.Create(post)
}

// GetPost retrieves a post with its comments. Hidden posts are only served
// to their author; everyone else gets ErrNotFound, as if the post did not
// exist.
func (s *PostService) GetPost(id, viewerID int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != viewerID {
		visible, err := s.isVisible(post, time.Now())
		if err != nil {
			return nil, err
		}
		if !visible {
			return nil, repositories.ErrNotFound
		}
	}

	if err := s.annotate(post); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %v", err)
	}
	for _, comment := range comments {
		s.attachCommentAuthor(comment)
	}
	post.Comments = comments
	post.CommentCount = len(comments)

	return post, nil
}

// ListPublished retrieves one page of the public feed, newest first,
// with comment counts. Returns the total number of visible posts.
func (s *PostService) ListPublished(page, perPage int) ([]*models.Post, int, error) {
	posts, err := s.postRepo.ListAll()
	if err != nil {
		return nil, 0, err
	}
	visible, err := s.filterVisible(posts, time.Now())
	if err != nil {
		return nil, 0, err
	}
	return s.page(visible, page, perPage)
}

// ListByCategory retrieves one page of a published category's feed.
// A missing or unpublished category yields ErrNotFound.
func (s *PostService) ListByCategory(slug string, page, perPage int) (*models.Category, []*models.Post, int, error) {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, nil, 0, err
	}
	if !category.IsPublished {
		return nil, nil, 0, repositories.ErrNotFound
	}

	posts, err := s.postRepo.ListByCategory(category.ID)
	if err != nil {
		return nil, nil, 0, err
	}
	visible, err := s.filterVisible(posts, time.Now())
	if err != nil {
		return nil, nil, 0, err
	}
	paged, total, err := s.page(visible, page, perPage)
	return category, paged, total, err
}

// ListByAuthor retrieves one page of a user's posts for their profile page.
// The owner sees everything, other viewers only visible posts.
func (s *PostService) ListByAuthor(username string, viewerID, page, perPage int) (*models.User, []*models.Post, int, error) {
	author, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, nil, 0, err
	}

	posts, err := s.postRepo.ListByAuthor(author.ID)
	if err != nil {
		return nil, nil, 0, err
	}

	if author.ID != viewerID {
		posts, err = s.filterVisible(posts, time.Now())
		if err != nil {
			return nil, nil, 0, err
		}
	}

	paged, total, err := s.page(posts, page, perPage)
	return author, paged, total, err
}

// UpdatePost updates an existing post. Only its author may edit it.
func (s *PostService) UpdatePost(post *models.Post, editorID int) error {
	existing, err := s.postRepo.GetByID(post.ID)
	if err != nil {
		return err
	}
	if existing.AuthorID != editorID {
		return ErrForbidden
	}

	// Preserve authorship and creation time
	post.AuthorID = existing.AuthorID
	post.CreatedAt = existing.CreatedAt
	post.BeforeCreate()

	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %v", err)
	}

	if post.CategoryID != 0 {
		if _, err := s.categoryRepo.GetByID(post.CategoryID); err != nil {
			return fmt.Errorf("category not found: %v", err)
		}
	}

	return s.postRepo.Update(post)
}

// DeletePost deletes a post and all its comments. Only its author may
// delete it.
func (s *PostService) DeletePost(id, editorID int) error {
	existing, err := s.postRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.AuthorID != editorID {
		return ErrForbidden
	}

	if err := s.commentRepo.DeleteByPost(id); err != nil {
		return fmt.Errorf("failed to delete comments: %v", err)
	}
	return s.postRepo.Delete(id)
}

// DetachCategory clears the category from every post that references it,
// mirroring SET NULL foreign-key semantics.
func (s *PostService) DetachCategory(categoryID int) error {
	posts, err := s.postRepo.ListByCategory(categoryID)
	if err != nil {
		return err
	}
	for _, post := range posts {
		post.CategoryID = 0
		if err := s.postRepo.Update(post); err != nil {
			return err
		}
	}
	return nil
}

// isVisible applies the public visibility rule: the post is published, its
// publish time has passed, and its category (if any) is published.
func (s *PostService) isVisible(post *models.Post, now time.Time) (bool, error) {
	if !post.VisibleAt(now) {
		return false, nil
	}
	if post.CategoryID == 0 {
		return true, nil
	}
	category, err := s.categoryRepo.GetByID(post.CategoryID)
	if err == repositories.ErrNotFound {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return category.IsPublished, nil
}

func (s *PostService) filterVisible(posts []*models.Post, now time.Time) ([]*models.Post, error) {
	var visible []*models.Post
	for _, post := range posts {
		ok, err := s.isVisible(post, now)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, post)
		}
	}
	return visible, nil
}

// page sorts newest first, slices out one page and annotates it.
func (s *PostService) page(posts []*models.Post, page, perPage int) ([]*models.Post, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})

	total := len(posts)
	// Overflowed offsets from huge query values come out negative.
	offset := (page - 1) * perPage
	if offset < 0 || offset >= total {
		return []*models.Post{}, total, nil
	}
	end := offset + perPage
	if end < offset || end > total {
		end = total
	}
	paged := posts[offset:end]

	for _, post := range paged {
		if err := s.annotate(post); err != nil {
			return nil, 0, err
		}
		count, err := s.commentRepo.CountByPost(post.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to count comments for post %d: %v", post.ID, err)
		}
		post.CommentCount = count
	}

	return paged, total, nil
}

// annotate fills the derived author and category fields.
func (s *PostService) annotate(post *models.Post) error {
	if author, err := s.userRepo.GetByID(post.AuthorID); err == nil {
		post.Author = author.Username
	}
	if post.CategoryID != 0 {
		if category, err := s.categoryRepo.GetByID(post.CategoryID); err == nil {
			post.Category = category
		}
	}
	return nil
}

func (s *PostService) attachCommentAuthor(comment *models.Comment) {
	if author, err := s.userRepo.GetByID(comment.AuthorID); err == nil {
		comment.Author = author.Username
	}
}
