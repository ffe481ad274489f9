package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	authsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/auth"
	domainauth "github.com/thienvyma/tagiangecolodge/internal/domain/auth"
)

// SessionCookie is the admin session cookie name.
const SessionCookie = "tg_admin_session"

const sessionContextKey = "ecolodge.session"

// AuthMiddleware resolves the admin session cookie and rejects unauthenticated
// requests. Applied to the admin route group only.
type AuthMiddleware struct {
	Service *authsvc.Service
	Logger  *slog.Logger
}

func (m AuthMiddleware) Handle(c *gin.Context) {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
		return
	}
	session, err := m.Service.Resolve(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, domainauth.ErrSessionNotFound) && m.Logger != nil {
			m.Logger.Debug("session resolution failed", "error", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
		return
	}
	c.Set(sessionContextKey, session)
	c.Next()
}

func currentSession(c *gin.Context) (*domainauth.Session, bool) {
	val, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	s, ok := val.(*domainauth.Session)
	return s, ok
}
