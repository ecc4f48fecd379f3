package services

import (
	"testing"
	"time"

	"inkwell/app/repositories"
	"inkwell/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (*AuthService, *mock.UserRepository, *mock.SessionRepository) {
	t.Helper()
	userRepo := mock.NewUserRepository()
	sessionRepo := mock.NewSessionRepository()
	auth, err := NewAuthService(userRepo, sessionRepo, []byte("test-secret"), time.Hour)
	require.NoError(t, err)
	return auth, userRepo, sessionRepo
}

func TestAuthServiceRegister(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	user, err := auth.Register("alice", "Alice@Example.com", "correcthorse")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correcthorse", user.PasswordHash)
}

func TestAuthServiceRegisterShortPassword(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, err := auth.Register("alice", "alice@example.com", "short")
	assert.Error(t, err)
}

func TestAuthServiceRegisterInvalidUser(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, err := auth.Register("al", "alice@example.com", "correcthorse")
	assert.Error(t, err)

	_, err = auth.Register("alice", "not-an-email", "correcthorse")
	assert.Error(t, err)
}

func TestAuthServiceRegisterDuplicate(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, err := auth.Register("alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)

	_, err = auth.Register("alice", "other@example.com", "correcthorse")
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	_, err = auth.Register("alicia", "alice@example.com", "correcthorse")
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestAuthServiceLogin(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	registered, err := auth.Register("alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)

	user, session, err := auth.Login("alice", "correcthorse")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, registered.ID, session.UserID)

	resolved, err := auth.Authenticate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resolved.ID)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, err := auth.Register("alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)

	_, _, err = auth.Login("alice", "wrongwrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login("nobody", "correcthorse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceLogout(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, err := auth.Register("alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)
	_, session, err := auth.Login("alice", "correcthorse")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(session.Token))

	_, err = auth.Authenticate(session.Token)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestAuthServiceTokenRoundtrip(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	registered, err := auth.Register("alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)
	_, session, err := auth.Login("alice", "correcthorse")
	require.NoError(t, err)

	raw, err := auth.IssueToken(session)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	user, err := auth.VerifyToken(raw)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAuthServiceLogoutRevokesToken(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, err := auth.Register("alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)
	_, session, err := auth.Login("alice", "correcthorse")
	require.NoError(t, err)

	raw, err := auth.IssueToken(session)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(session.Token))

	_, err = auth.VerifyToken(raw)
	assert.Error(t, err)
}

func TestAuthServiceSessionToken(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, err := auth.Register("alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)
	_, session, err := auth.Login("alice", "correcthorse")
	require.NoError(t, err)

	raw, err := auth.IssueToken(session)
	require.NoError(t, err)

	// A bearer token resolves back to the session it was issued against,
	// so logging out with only the JWT still revokes the session.
	token, err := auth.SessionToken(raw)
	require.NoError(t, err)
	assert.Equal(t, session.Token, token)

	require.NoError(t, auth.Logout(token))
	_, err = auth.VerifyToken(raw)
	assert.Error(t, err)

	_, err = auth.SessionToken("not.a.token")
	assert.Error(t, err)
}

func TestAuthServiceVerifyTokenRejectsGarbage(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, err := auth.VerifyToken("not.a.token")
	assert.Error(t, err)
}

func TestAuthServiceVerifyTokenWrongSecret(t *testing.T) {
	auth, userRepo, sessionRepo := newTestAuthService(t)

	_, err := auth.Register("alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)
	_, session, err := auth.Login("alice", "correcthorse")
	require.NoError(t, err)

	other, err := NewAuthService(userRepo, sessionRepo, []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	raw, err := other.IssueToken(session)
	require.NoError(t, err)

	_, err = auth.VerifyToken(raw)
	assert.Error(t, err)
}
