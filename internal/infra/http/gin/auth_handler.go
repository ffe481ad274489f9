package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	authsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/auth"
)

type AuthHandler struct {
	Service      *authsvc.Service
	CookieSecure bool
	Logger       *slog.Logger
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	session, err := h.Service.Login(c.Request.Context(), authsvc.LoginParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if h.Logger != nil {
			h.Logger.Error("login failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetCookie(SessionCookie, string(session.Token), maxAge, "/", "", h.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"username": session.Username, "expires_at": session.ExpiresAt.Format(time.RFC3339)})
}

func (h AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(SessionCookie)
	if err == nil && token != "" {
		if err := h.Service.Logout(c.Request.Context(), token); err != nil && h.Logger != nil {
			h.Logger.Warn("logout failed", "error", err)
		}
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", h.CookieSecure, true)
	c.Status(http.StatusNoContent)
}

func (h AuthHandler) Me(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username":   session.Username,
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
	})
}

var _ AuthHTTP = (*AuthHandler)(nil)
