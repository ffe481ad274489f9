package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/thienvyma/tagiangecolodge/internal/domain/auth"
)

type plainHasher struct{}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) NewToken() (string, error) { return s.token, s.err }

type memorySessions struct {
	sessions map[domainauth.Token]*domainauth.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: make(map[domainauth.Token]*domainauth.Session)}
}

func (m *memorySessions) Save(_ context.Context, s *domainauth.Session) error {
	m.sessions[s.Token] = s
	return nil
}

func (m *memorySessions) Get(_ context.Context, t domainauth.Token) (*domainauth.Session, error) {
	s, ok := m.sessions[t]
	if !ok {
		return nil, domainauth.ErrSessionNotFound
	}
	return s, nil
}

func (m *memorySessions) Delete(_ context.Context, t domainauth.Token) error {
	delete(m.sessions, t)
	return nil
}

func testAuthService(sessions domainauth.SessionStore) *Service {
	return &Service{
		AdminUser: "admin",
		AdminHash: "hashed:s3cret",
		Sessions:  sessions,
		Passwords: plainHasher{},
		Tokens:    staticTokens{token: "tok-123"},
		TTL:       time.Hour,
	}
}

func TestLoginSuccess(t *testing.T) {
	store := newMemorySessions()
	svc := testAuthService(store)

	session, err := svc.Login(context.Background(), LoginParams{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, domainauth.Token("tok-123"), session.Token)
	assert.Equal(t, "admin", session.Username)
	assert.Len(t, store.sessions, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := testAuthService(newMemorySessions())
	_, err := svc.Login(context.Background(), LoginParams{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongUsername(t *testing.T) {
	svc := testAuthService(newMemorySessions())
	_, err := svc.Login(context.Background(), LoginParams{Username: "root", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveExpiredSessionIsDeleted(t *testing.T) {
	store := newMemorySessions()
	svc := testAuthService(store)

	expired := &domainauth.Session{
		Token:     "tok-old",
		Username:  "admin",
		CreatedAt: time.Now().Add(-10 * time.Hour),
		ExpiresAt: time.Now().Add(-2 * time.Hour),
	}
	require.NoError(t, store.Save(context.Background(), expired))

	_, err := svc.Resolve(context.Background(), "tok-old")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
	assert.Empty(t, store.sessions)
}

func TestLogoutUnknownTokenIsNoop(t *testing.T) {
	svc := testAuthService(newMemorySessions())
	assert.NoError(t, svc.Logout(context.Background(), "never-issued"))
}
