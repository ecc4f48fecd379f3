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

// ProfileController handles profile pages and profile editing.
type ProfileController struct {
	userService *services.UserService
	postService *services.PostService
	templates   map[string]*template.Template
	pageSize    int
}

// NewProfileController creates a new ProfileController
func NewProfileController(userService *services.UserService, postService *services.PostService, templates map[string]*template.Template, pageSize int) *ProfileController {
	return &ProfileController{
		userService: userService,
		postService: postService,
		templates:   templates,
		pageSize:    pageSize,
	}
}

// Show displays a user's profile with their post feed. The profile owner
// sees all of their posts, other viewers only the visible ones.
func (uc *ProfileController) Show(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", uc.pageSize)

	profile, posts, total, err := uc.postService.ListByAuthor(username, viewerID(r), page, perPage)
	if err != nil {
		sendError(w, r, "User not found", http.StatusNotFound)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, map[string]interface{}{
			"profile": profile.Sanitize(),
			"posts":   posts,
			"page":    page,
			"total":   total,
		})
		return
	}

	data := struct {
		Profile    *models.User
		Posts      []*models.Post
		Page       int
		TotalPages int
		User       *models.User
	}{
		Profile:    profile.Sanitize(),
		Posts:      posts,
		Page:       page,
		TotalPages: totalPages(total, perPage),
		User:       currentUser(r),
	}
	if err := uc.templates["profile"].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// EditForm displays the profile edit form for the logged-in user
func (uc *ProfileController) EditForm(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		sendError(w, r, "Authentication required", http.StatusUnauthorized)
		return
	}

	data := struct {
		Profile *models.User
		User    *models.User
	}{
		Profile: user.Sanitize(),
		User:    user,
	}
	if err := uc.templates["profile_edit"].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Update applies a profile edit to the logged-in user's record
func (uc *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		sendError(w, r, "Authentication required", http.StatusUnauthorized)
		return
	}

	var update services.ProfileUpdate
	if isAPIRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		update.Username = r.FormValue("username")
		update.Email = r.FormValue("email")
		update.FirstName = r.FormValue("first_name")
		update.LastName = r.FormValue("last_name")
		update.Bio = r.FormValue("bio")
	}

	updated, err := uc.userService.UpdateProfile(user.ID, update)
	if err != nil {
		sendError(w, r, "Failed to update profile: "+err.Error(), errorStatus(err))
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, updated.Sanitize())
	} else {
		http.Redirect(w, r, "/users/"+updated.Username, http.StatusSeeOther)
	}
}

// Delete removes the logged-in user's account and everything they authored
func (uc *ProfileController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		sendError(w, r, "Authentication required", http.StatusUnauthorized)
		return
	}

	if err := uc.userService.DeleteAccount(user.ID); err != nil {
		sendError(w, r, "Failed to delete account: "+err.Error(), errorStatus(err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	if isAPIRequest(r) {
		w.WriteHeader(http.StatusNoContent)
	} else {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
