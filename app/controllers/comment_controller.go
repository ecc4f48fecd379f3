package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Index lists all comments for a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comments, err := cc.commentService.ListPostComments(postID)
	if err != nil {
		sendError(w, r, "Failed to fetch comments: "+err.Error(), http.StatusNotFound)
		return
	}

	sendJSON(w, map[string]interface{}{"comments": comments})
}

// Create handles adding a comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		sendError(w, r, "Authentication required", http.StatusUnauthorized)
		return
	}

	postID, err := pathID(r, "postId")
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comment, ok := cc.parseComment(w, r)
	if !ok {
		return
	}
	comment.PostID = postID

	if err := cc.commentService.CreateComment(comment, user.ID); err != nil {
		sendError(w, r, "Failed to create comment: "+err.Error(), errorStatus(err))
		return
	}

	if isAPIRequest(r) {
		sendJSONStatus(w, http.StatusCreated, comment)
	} else {
		http.Redirect(w, r, "/posts/"+strconv.Itoa(postID), http.StatusSeeOther)
	}
}

// Update handles editing a comment
func (cc *CommentController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		sendError(w, r, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	comment, ok := cc.parseComment(w, r)
	if !ok {
		return
	}
	comment.ID = id

	if err := cc.commentService.UpdateComment(comment, user.ID); err != nil {
		sendError(w, r, "Failed to update comment: "+err.Error(), errorStatus(err))
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, comment)
	} else {
		http.Redirect(w, r, "/posts/"+strconv.Itoa(comment.PostID), http.StatusSeeOther)
	}
}

// Delete handles deleting a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		sendError(w, r, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	// Remember the parent post for the web redirect before deleting.
	existing, err := cc.commentService.GetComment(id)
	if err != nil {
		sendError(w, r, "Comment not found", http.StatusNotFound)
		return
	}

	if err := cc.commentService.DeleteComment(id, user.ID); err != nil {
		sendError(w, r, "Failed to delete comment: "+err.Error(), errorStatus(err))
		return
	}

	if isAPIRequest(r) {
		w.WriteHeader(http.StatusNoContent)
	} else {
		http.Redirect(w, r, "/posts/"+strconv.Itoa(existing.PostID), http.StatusSeeOther)
	}
}

func (cc *CommentController) parseComment(w http.ResponseWriter, r *http.Request) (*models.Comment, bool) {
	var comment models.Comment
	if isAPIRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
			sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return nil, false
		}
		return &comment, true
	}

	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	comment.Content = r.FormValue("content")
	return &comment, true
}
