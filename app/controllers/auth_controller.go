package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/services"
)

// AuthController handles registration, login and logout.
type AuthController struct {
	auth      *services.AuthService
	templates map[string]*template.Template
}

// NewAuthController creates a new AuthController
func NewAuthController(auth *services.AuthService, templates map[string]*template.Template) *AuthController {
	return &AuthController{auth: auth, templates: templates}
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ShowRegister displays the registration form
func (ac *AuthController) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if err := ac.templates["register"].ExecuteTemplate(w, "layout", authPageData(r)); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Register creates an account and logs the new user in
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	creds, ok := ac.parseCredentials(w, r)
	if !ok {
		return
	}

	user, err := ac.auth.Register(creds.Username, creds.Email, creds.Password)
	if err != nil {
		sendError(w, r, "Failed to register: "+err.Error(), errorStatus(err))
		return
	}

	session, err := ac.auth.StartSession(user.ID)
	if err != nil {
		sendError(w, r, "Failed to start session: "+err.Error(), http.StatusInternalServerError)
		return
	}

	ac.finishLogin(w, r, user, session, http.StatusCreated)
}

// ShowLogin displays the login form
func (ac *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if err := ac.templates["login"].ExecuteTemplate(w, "layout", authPageData(r)); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

func authPageData(r *http.Request) interface{} {
	return struct {
		User *models.User
	}{User: currentUser(r)}
}

// Login verifies credentials and starts a session
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	creds, ok := ac.parseCredentials(w, r)
	if !ok {
		return
	}

	user, session, err := ac.auth.Login(creds.Username, creds.Password)
	if err != nil {
		sendError(w, r, err.Error(), errorStatus(err))
		return
	}

	ac.finishLogin(w, r, user, session, http.StatusOK)
}

// Logout deletes the current session and clears the cookie. The session
// is resolved from the cookie or, for API clients, from the bearer token,
// so revoking it invalidates both credentials.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if token := ac.sessionToken(r); token != "" {
		if err := ac.auth.Logout(token); err != nil {
			sendError(w, r, "Failed to log out: "+err.Error(), http.StatusInternalServerError)
			return
		}
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

// sessionToken resolves the request's session token from the cookie or
// the Authorization bearer token.
func (ac *AuthController) sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		if token, err := ac.auth.SessionToken(strings.TrimPrefix(header, "Bearer ")); err == nil {
			return token
		}
	}
	return ""
}

func (ac *AuthController) parseCredentials(w http.ResponseWriter, r *http.Request) (credentials, bool) {
	var creds credentials
	if isAPIRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return creds, false
		}
	} else {
		if err := r.ParseForm(); err != nil {
			sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return creds, false
		}
		creds.Username = r.FormValue("username")
		creds.Email = r.FormValue("email")
		creds.Password = r.FormValue("password")
	}
	return creds, true
}

func (ac *AuthController) finishLogin(w http.ResponseWriter, r *http.Request, user *models.User, session *models.Session, status int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if isAPIRequest(r) {
		token, err := ac.auth.IssueToken(session)
		if err != nil {
			sendError(w, r, "Failed to issue token: "+err.Error(), http.StatusInternalServerError)
			return
		}
		sendJSONStatus(w, status, map[string]interface{}{
			"user":  user.Sanitize(),
			"token": token,
		})
	} else {
		http.Redirect(w, r, "/users/"+user.Username, http.StatusSeeOther)
	}
}
