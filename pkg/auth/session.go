package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"ecotrack/internal/model"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey   = "session"
	bearerPrefix = "Bearer "
)

var ErrNoSession = errors.New("no authenticated session")

// Authenticator resolves a platform bearer token into the current user profile.
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (*model.User, error)
}

type SessionAuth struct {
	authenticator Authenticator
}

func NewSessionAuth(authenticator Authenticator) *SessionAuth {
	return &SessionAuth{
		authenticator: authenticator,
	}
}

// Required rejects requests without a valid bearer token. A failing identity backend
// answers 502 rather than 401.
func (a *SessionAuth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		token, ok := bearerToken(c)
		if !ok {
			log.Info("missing or malformed authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		session, err := a.resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, model.ErrNotAuthenticated) || errors.Is(err, ErrNoSession) {
				log.Info("failed to resolve session", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
				return
			}
			log.Error("session lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "failed to verify session"})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// Optional attaches a session when the token resolves and otherwise treats the caller as anonymous.
func (a *SessionAuth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if ok {
			session, err := a.resolve(c.Request.Context(), token)
			if err != nil {
				logger.Logger().Debug("anonymous request, session not resolved", zap.Error(err))
			} else {
				c.Set(sessionKey, session)
			}
		}
		c.Next()
	}
}

func (a *SessionAuth) resolve(ctx context.Context, token string) (*model.Session, error) {
	user, err := a.authenticator.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if user.Email == "" {
		return nil, ErrNoSession
	}

	return &model.Session{
		Email:    user.Email,
		FullName: user.FullName,
		Location: user.Location,
		Token:    token,
	}, nil
}

// SessionFrom returns the session attached by Required or Optional.
func SessionFrom(c *gin.Context) (*model.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	s, ok := v.(*model.Session)
	return s, ok
}

// WithSession attaches a session to the gin context. Used by tests and alternative front doors.
func WithSession(c *gin.Context, s *model.Session) {
	c.Set(sessionKey, s)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}
