package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"inkwell/app/config"
	"inkwell/app/middleware"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setupTestTemplates(t *testing.T) string {
	tmpDir := t.TempDir()
	viewsDir := filepath.Join(tmpDir, "app", "views")

	dirs := []string{
		filepath.Join(viewsDir, "posts"),
		filepath.Join(viewsDir, "auth"),
		filepath.Join(viewsDir, "users"),
		filepath.Join(viewsDir, "categories"),
		filepath.Join(viewsDir, "shared"),
	}
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	templates := map[string]string{
		filepath.Join(viewsDir, "layout.html"):            `{{define "layout"}}<!DOCTYPE html><html><body>{{template "content" .}}</body></html>{{end}}`,
		filepath.Join(viewsDir, "posts/index.html"):       `{{define "content"}}<div class="posts">{{range .Posts}}<h2>{{.Title}}</h2>{{end}}</div>{{end}}`,
		filepath.Join(viewsDir, "posts/show.html"):        `{{define "content"}}<h1>{{.Title}}</h1><p>{{.Content}}</p>{{template "comments" .}}{{end}}`,
		filepath.Join(viewsDir, "posts/new.html"):         `{{define "content"}}<form method="POST"><input name="title"><textarea name="content"></textarea></form>{{end}}`,
		filepath.Join(viewsDir, "posts/edit.html"):        `{{define "content"}}<form method="POST"><input name="title" value="{{.Title}}"></form>{{end}}`,
		filepath.Join(viewsDir, "auth/login.html"):        `{{define "content"}}<form method="POST"><input name="username"><input name="password"></form>{{end}}`,
		filepath.Join(viewsDir, "auth/register.html"):     `{{define "content"}}<form method="POST"><input name="username"><input name="email"><input name="password"></form>{{end}}`,
		filepath.Join(viewsDir, "users/show.html"):        `{{define "content"}}<h1>{{.Profile.Username}}</h1>{{range .Posts}}<h2>{{.Title}}</h2>{{end}}{{end}}`,
		filepath.Join(viewsDir, "users/edit.html"):        `{{define "content"}}<form method="POST"><input name="username" value="{{.Profile.Username}}"></form>{{end}}`,
		filepath.Join(viewsDir, "categories/index.html"):  `{{define "content"}}<ul>{{range .Categories}}<li>{{.Title}}</li>{{end}}</ul>{{end}}`,
		filepath.Join(viewsDir, "categories/show.html"):   `{{define "content"}}<h1>{{.Category.Title}}</h1>{{range .Posts}}<h2>{{.Title}}</h2>{{end}}{{end}}`,
		filepath.Join(viewsDir, "shared/comments.html"):   `{{define "comments"}}<div class="comments">{{range .Comments}}<p>{{.Content}}</p>{{end}}</div>{{end}}`,
	}
	for path, content := range templates {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return tmpDir
}

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestRouter(t *testing.T, db *badger.DB) *mux.Router {
	cfg := &config.Config{
		ViewsPath:  setupTestTemplates(t),
		Secret:     []byte("test-secret"),
		SessionTTL: time.Hour,
		PageSize:   10,
	}
	router, err := SetupRoutes(db, cfg, zerolog.Nop())
	require.NoError(t, err)
	return router
}

// registerUser signs up a user through the web form and returns the
// session cookie from the response.
func registerUser(t *testing.T, router *mux.Router, username, email string) *http.Cookie {
	t.Helper()

	form := url.Values{
		"username": {username},
		"email":    {email},
		"password": {"correcthorse"},
	}
	req := httptest.NewRequest("POST", "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	t.Fatal("no session cookie in register response")
	return nil
}

// registerAPIUser signs up a user through the JSON API and returns the
// bearer token.
func registerAPIUser(t *testing.T, router *mux.Router, username, email string) string {
	t.Helper()

	body := map[string]string{
		"username": username,
		"email":    email,
		"password": "correcthorse",
	}
	w := doJSON(router, "POST", "/api/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

// createWebPost submits the post form with the given session cookie and
// returns the new post's detail path from the redirect.
func createWebPost(t *testing.T, router *mux.Router, cookie *http.Cookie, title string) string {
	t.Helper()

	form := url.Values{
		"title":        {title},
		"content":      {"This post was created during a handler test"},
		"is_published": {"on"},
	}
	req := httptest.NewRequest("POST", "/posts", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/posts/"))
	return location
}

func doForm(router *mux.Router, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doJSON(router *mux.Router, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doGet(router *mux.Router, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
