package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"

	"github.com/cristalhq/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// AuthService handles registration, login and session/token verification.
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	signer      jwt.Signer
	verifier    jwt.Verifier
	sessionTTL  time.Duration
}

// NewAuthService creates a new AuthService. The secret signs API bearer
// tokens; sessionTTL bounds both cookie sessions and tokens.
func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, secret []byte, sessionTTL time.Duration) (*AuthService, error) {
	signer, err := jwt.NewSignerHS(jwt.HS256, secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create token signer: %v", err)
	}
	verifier, err := jwt.NewVerifierHS(jwt.HS256, secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %v", err)
	}

	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		signer:      signer,
		verifier:    verifier,
		sessionTTL:  sessionTTL,
	}, nil
}

// Register creates a new user with a bcrypt-hashed password.
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	user.BeforeCreate()

	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user: %v", err)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and starts a session.
func (s *AuthService) Login(username, password string) (*models.User, *models.Session, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err == repositories.ErrNotFound {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.StartSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// StartSession creates a session for an already-authenticated user.
func (s *AuthService) StartSession(userID int) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %v", err)
	}
	return session, nil
}

// Logout deletes a session, revoking its cookie and any bearer tokens
// issued against it.
func (s *AuthService) Logout(token string) error {
	return s.sessionRepo.Delete(token)
}

// Authenticate resolves a session token to its user.
func (s *AuthService) Authenticate(token string) (*models.User, error) {
	session, err := s.sessionRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now()) {
		return nil, repositories.ErrNotFound
	}
	return s.userRepo.GetByID(session.UserID)
}

// IssueToken signs a bearer token for an API client. The session token
// rides in the subject claim so Logout revokes the JWT too.
func (s *AuthService) IssueToken(session *models.Session) (string, error) {
	token, err := jwt.NewBuilder(s.signer).Build(&jwt.RegisteredClaims{
		Subject:   session.Token,
		ID:        strconv.Itoa(session.UserID),
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		Issuer:    "inkwell",
	})
	if err != nil {
		return "", err
	}
	return token.String(), nil
}

// VerifyToken checks a bearer token's signature and expiry, then resolves
// the underlying session to a user.
func (s *AuthService) VerifyToken(raw string) (*models.User, error) {
	claims, err := s.parseClaims(raw)
	if err != nil {
		return nil, err
	}
	if !claims.IsValidAt(time.Now()) {
		return nil, ErrInvalidCredentials
	}

	return s.Authenticate(claims.Subject)
}

// SessionToken extracts the session token a bearer token was issued
// against, verifying its signature. Logging out an API client needs the
// session token, which rides in the subject claim.
func (s *AuthService) SessionToken(raw string) (string, error) {
	claims, err := s.parseClaims(raw)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *AuthService) parseClaims(raw string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.Parse([]byte(raw), s.verifier)
	if err != nil {
		return nil, err
	}

	var claims jwt.RegisteredClaims
	if err := json.Unmarshal(token.Claims(), &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}
