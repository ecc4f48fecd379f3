package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories/mock"
	"inkwell/app/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) (*services.AuthService, *models.User, *models.Session) {
	t.Helper()

	userRepo := mock.NewUserRepository()
	sessionRepo := mock.NewSessionRepository()
	auth, err := services.NewAuthService(userRepo, sessionRepo, []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	user, err := auth.Register("alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)
	session, err := auth.StartSession(user.ID)
	require.NoError(t, err)
	return auth, user, session
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLoggerPassesThrough(t *testing.T) {
	handler := Logger(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRecoverer(t *testing.T) {
	handler := Recoverer(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestContentTypeJSON(t *testing.T) {
	handler := ContentTypeJSON(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/posts", nil))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/posts", nil))
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestCurrentUserFromCookie(t *testing.T) {
	auth, user, session := newTestAuth(t)

	var got *models.User
	handler := CurrentUser(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserFrom(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: session.Token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
}

func TestCurrentUserFromBearerToken(t *testing.T) {
	auth, user, session := newTestAuth(t)

	raw, err := auth.IssueToken(session)
	require.NoError(t, err)

	var got *models.User
	handler := CurrentUser(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserFrom(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
}

func TestCurrentUserAnonymous(t *testing.T) {
	auth, _, _ := newTestAuth(t)

	seen := false
	handler := CurrentUser(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := UserFrom(r.Context())
		seen = ok
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.False(t, seen)

	// Bad credentials also resolve to anonymous, not an error.
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale-token"})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, seen)
}

func TestRequireAuthRedirectsWeb(t *testing.T) {
	handler := RequireAuth(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/posts/new", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireAuthRejectsAPI(t *testing.T) {
	handler := RequireAuth(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/posts", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())
}

func TestRequireAuthAllowsAuthenticated(t *testing.T) {
	handler := RequireAuth(okHandler())

	req := httptest.NewRequest("GET", "/posts/new", nil)
	req = req.WithContext(WithUser(req.Context(), &models.User{ID: 1, Username: "alice"}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
