package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// CategoryController handles category pages and category management.
type CategoryController struct {
	categoryService *services.CategoryService
	postService     *services.PostService
	templates       map[string]*template.Template
	pageSize        int
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService *services.CategoryService, postService *services.PostService, templates map[string]*template.Template, pageSize int) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
		postService:     postService,
		templates:       templates,
		pageSize:        pageSize,
	}
}

// Index lists published categories
func (cc *CategoryController) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := cc.categoryService.ListPublished()
	if err != nil {
		sendError(w, r, "Failed to fetch categories: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, map[string]interface{}{"categories": categories})
		return
	}

	data := struct {
		Categories []*models.Category
		User       *models.User
	}{
		Categories: categories,
		User:       currentUser(r),
	}
	if err := cc.templates["categories"].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Show displays one published category's post feed
func (cc *CategoryController) Show(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", cc.pageSize)

	category, posts, total, err := cc.postService.ListByCategory(slug, page, perPage)
	if err != nil {
		sendError(w, r, "Category not found", http.StatusNotFound)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, map[string]interface{}{
			"category": category,
			"posts":    posts,
			"page":     page,
			"total":    total,
		})
		return
	}

	data := struct {
		Category   *models.Category
		Posts      []*models.Post
		Page       int
		TotalPages int
		User       *models.User
	}{
		Category:   category,
		Posts:      posts,
		Page:       page,
		TotalPages: totalPages(total, perPage),
		User:       currentUser(r),
	}
	if err := cc.templates["category"].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Create handles creating a new category
func (cc *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFrom(r.Context()); !ok {
		sendError(w, r, "Authentication required", http.StatusUnauthorized)
		return
	}

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := cc.categoryService.CreateCategory(&category); err != nil {
		sendError(w, r, "Failed to create category: "+err.Error(), errorStatus(err))
		return
	}

	sendJSONStatus(w, http.StatusCreated, category)
}

// Update handles editing an existing category
func (cc *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFrom(r.Context()); !ok {
		sendError(w, r, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, "Invalid category ID", http.StatusBadRequest)
		return
	}

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	category.ID = id

	if err := cc.categoryService.UpdateCategory(&category); err != nil {
		sendError(w, r, "Failed to update category: "+err.Error(), errorStatus(err))
		return
	}

	sendJSON(w, category)
}

// Delete handles deleting a category
func (cc *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFrom(r.Context()); !ok {
		sendError(w, r, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, "Invalid category ID", http.StatusBadRequest)
		return
	}

	if err := cc.categoryService.DeleteCategory(id); err != nil {
		sendError(w, r, "Failed to delete category: "+err.Error(), errorStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
