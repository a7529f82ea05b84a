package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trailhub/pkg/memcache"
	"trailhub/pkg/utils"
)

const (
	CtxUserID    = "user_id"
	CtxRole      = "Role"
	CtxTokenID   = "token_id"
	CtxTokenExp  = "token_exp"
	RoleAdmin    = "admin"
	RoleUser     = "user"
	bearerPrefix = "Bearer "
)

// Authenticator resolves the caller from a bearer token or the session
// cookie and rejects revoked tokens.
type Authenticator struct {
	issuer     *utils.TokenIssuer
	store      memcache.TokenStore
	cookieName string
}

func NewAuthenticator(issuer *utils.TokenIssuer, store memcache.TokenStore, cookieName string) *Authenticator {
	return &Authenticator{issuer: issuer, store: store, cookieName: cookieName}
}

func (a *Authenticator) CookieName() string { return a.cookieName }

func (a *Authenticator) tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		return strings.TrimPrefix(h, bearerPrefix)
	}
	if cookie, err := c.Cookie(a.cookieName); err == nil {
		return cookie
	}
	return ""
}

// resolve returns true when the request carries a valid, unrevoked token.
func (a *Authenticator) resolve(c *gin.Context) bool {
	raw := a.tokenFrom(c)
	if raw == "" {
		return false
	}
	claims, err := a.issuer.ValidateToken(raw)
	if err != nil {
		return false
	}
	if _, revoked, err := a.store.Peek(c.Request.Context(), memcache.RevokedPrefix+claims.ID); err != nil || revoked {
		return false
	}

	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxRole, claims.Role)
	c.Set(CtxTokenID, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(CtxTokenExp, claims.ExpiresAt.Time)
	}
	return true
}

func (a *Authenticator) JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.resolve(c) {
			utils.RespondError(c, http.StatusUnauthorized, "Not logged in")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth populates the caller when a token is present but never aborts.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		a.resolve(c)
		c.Next()
	}
}

func RoleMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != requiredRole {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller, if any.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(CtxUserID)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// TokenSession identifies the token used on this request so it can be revoked.
func TokenSession(c *gin.Context) (string, time.Time) {
	exp, _ := c.Get(CtxTokenExp)
	t, _ := exp.(time.Time)
	return c.GetString(CtxTokenID), t
}
