package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// formTimeLayout matches datetime-local form inputs.
const formTimeLayout = "2006-01-02T15:04"

// PostController handles HTTP requests for posts
type PostController struct {
	postService *services.PostService
	templates   map[string]*template.Template
	pageSize    int
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, templates map[string]*template.Template, pageSize int) *PostController {
	return &PostController{
		postService: postService,
		templates:   templates,
		pageSize:    pageSize,
	}
}

// Index handles the public feed
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", pc.pageSize)

	posts, total, err := pc.postService.ListPublished(page, perPage)
	if err != nil {
		sendError(w, r, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, map[string]interface{}{
			"posts": posts,
			"page":  page,
			"total": total,
		})
		return
	}

	data := struct {
		Posts      []*models.Post
		Page       int
		TotalPages int
		User       *models.User
	}{
		Posts:      posts,
		Page:       page,
		TotalPages: totalPages(total, perPage),
		User:       currentUser(r),
	}
	if err := pc.templates["index"].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Show handles displaying a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.postService.GetPost(id, viewerID(r))
	if err != nil {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, post)
		return
	}

	data := struct {
		*models.Post
		User *models.User
	}{
		Post: post,
		User: currentUser(r),
	}
	if err := pc.templates["show"].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// New displays the form for creating a new post
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	data := struct {
		User *models.User
	}{User: currentUser(r)}
	if err := pc.templates["new"].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		sendError(w, r, "Authentication required", http.StatusUnauthorized)
		return
	}

	post, ok := pc.parsePost(w, r)
	if !ok {
		return
	}

	if err := pc.postService.CreatePost(post, user.ID); err != nil {
		sendError(w, r, "Failed to create post: "+err.Error(), errorStatus(err))
		return
	}

	if isAPIRequest(r) {
		sendJSONStatus(w, http.StatusCreated, post)
	} else {
		http.Redirect(w, r, "/posts/"+strconv.Itoa(post.ID), http.StatusSeeOther)
	}
}

// EditForm displays the form for editing a post. A non-author is redirected
// to the post detail page instead of being shown an error.
func (pc *PostController) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	user := currentUser(r)
	post, err := pc.postService.GetPost(id, viewerID(r))
	if err != nil {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}

	if user == nil || post.AuthorID != user.ID {
		http.Redirect(w, r, "/posts/"+strconv.Itoa(id), http.StatusSeeOther)
		return
	}

	data := struct {
		*models.Post
		User *models.User
	}{
		Post: post,
		User: user,
	}
	if err := pc.templates["edit"].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Update handles editing an existing post
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		sendError(w, r, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, ok := pc.parsePost(w, r)
	if !ok {
		return
	}
	post.ID = id

	if err := pc.postService.UpdatePost(post, user.ID); err != nil {
		if err == services.ErrForbidden && !isAPIRequest(r) {
			http.Redirect(w, r, "/posts/"+strconv.Itoa(id), http.StatusSeeOther)
			return
		}
		sendError(w, r, "Failed to update post: "+err.Error(), errorStatus(err))
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, post)
	} else {
		http.Redirect(w, r, "/posts/"+strconv.Itoa(id), http.StatusSeeOther)
	}
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		sendError(w, r, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := pc.postService.DeletePost(id, user.ID); err != nil {
		sendError(w, r, "Failed to delete post: "+err.Error(), errorStatus(err))
		return
	}

	if isAPIRequest(r) {
		w.WriteHeader(http.StatusNoContent)
	} else {
		http.Redirect(w, r, "/users/"+user.Username, http.StatusSeeOther)
	}
}

func (pc *PostController) parsePost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	var post models.Post
	if isAPIRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return nil, false
		}
		return &post, true
	}

	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	post.Title = r.FormValue("title")
	post.Content = r.FormValue("content")
	post.Location = r.FormValue("location")
	post.IsPublished = r.FormValue("is_published") != ""
	if raw := r.FormValue("category_id"); raw != "" {
		if categoryID, err := strconv.Atoi(raw); err == nil {
			post.CategoryID = categoryID
		}
	}
	if raw := r.FormValue("published_at"); raw != "" {
		publishedAt, err := time.ParseInLocation(formTimeLayout, raw, time.Local)
		if err != nil {
			sendError(w, r, "Invalid publication time", http.StatusBadRequest)
			return nil, false
		}
		post.PublishedAt = publishedAt
	}
	return &post, true
}

func pathID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

func currentUser(r *http.Request) *models.User {
	user, _ := middleware.UserFrom(r.Context())
	return user
}

func viewerID(r *http.Request) int {
	if user := currentUser(r); user != nil {
		return user.ID
	}
	return 0
}
