package controllers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"inkwell/app/repositories"
	"inkwell/app/services"
)

// LoadTemplates loads and parses all page templates relative to basePath.
// Every page shares the layout template.
func LoadTemplates(basePath string) map[string]*template.Template {
	pages := map[string][]string{
		"index":        {"app/views/posts/index.html"},
		"show":         {"app/views/posts/show.html", "app/views/shared/comments.html"},
		"new":          {"app/views/posts/new.html"},
		"edit":         {"app/views/posts/edit.html"},
		"login":        {"app/views/auth/login.html"},
		"register":     {"app/views/auth/register.html"},
		"profile":      {"app/views/users/show.html"},
		"profile_edit": {"app/views/users/edit.html"},
		"categories":   {"app/views/categories/index.html"},
		"category":     {"app/views/categories/show.html"},
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, files := range pages {
		paths := []string{filepath.Join(basePath, "app/views/layout.html")}
		for _, f := range files {
			paths = append(paths, filepath.Join(basePath, f))
		}
		templates[name] = template.Must(template.ParseFiles(paths...))
	}
	return templates
}

// isAPIRequest reports whether the response should be JSON.
func isAPIRequest(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || strings.HasPrefix(r.URL.Path, "/api")
}

func sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func sendJSONStatus(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if isAPIRequest(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
	} else {
		http.Error(w, message, status)
	}
}

// errorStatus maps service errors to HTTP status codes. Anything that is
// not a known sentinel is treated as a bad request, which covers the
// validation errors services return.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// queryInt parses a positive integer query parameter with a fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// totalPages converts an item count to a page count, minimum one page.
func totalPages(total, perPage int) int {
	if perPage < 1 {
		perPage = 1
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	return pages
}
