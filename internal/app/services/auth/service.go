package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainauth "github.com/thienvyma/tagiangecolodge/internal/domain/auth"
)

var ErrInvalidCredentials = errors.New("auth: invalid credentials")

type PasswordHasher interface {
	Compare(hash, password string) error
}

type TokenGenerator interface {
	NewToken() (string, error)
}

// Service authenticates the single admin account configured via environment
// and manages its sessions.
type Service struct {
	AdminUser string
	AdminHash string
	Sessions  domainauth.SessionStore
	Passwords PasswordHasher
	Tokens    TokenGenerator
	TTL       time.Duration
	Logger    *slog.Logger
}

type LoginParams struct {
	Username string
	Password string
}

func (s *Service) Login(ctx context.Context, params LoginParams) (*domainauth.Session, error) {
	username := strings.TrimSpace(params.Username)
	if username == "" || username != s.AdminUser {
		return nil, ErrInvalidCredentials
	}
	if err := s.Passwords.Compare(s.AdminHash, params.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.Tokens.NewToken()
	if err != nil {
		return nil, err
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	session, err := domainauth.NewSession(domainauth.CreateSessionParams{
		Token:    domainauth.Token(token),
		Username: username,
		TTL:      ttl,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("admin logged in", "username", username)
	}
	return session, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	err := s.Sessions.Delete(ctx, domainauth.Token(token))
	if errors.Is(err, domainauth.ErrSessionNotFound) {
		return nil
	}
	return err
}

// Resolve validates a session token, expiring stale entries lazily.
func (s *Service) Resolve(ctx context.Context, token string) (*domainauth.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domainauth.ErrSessionNotFound
	}
	session, err := s.Sessions.Get(ctx, domainauth.Token(token))
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now()) {
		_ = s.Sessions.Delete(ctx, session.Token)
		return nil, domainauth.ErrSessionNotFound
	}
	return session, nil
}
