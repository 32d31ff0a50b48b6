package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ping-Win-Info/insavente/internal/authz"
	"github.com/Ping-Win-Info/insavente/pkg/helpers"
	"github.com/Ping-Win-Info/insavente/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUserRoleKey = "userRole"
)

// Auth validates the Bearer token from the Authorization header and sets
// userID and userRole in the Gin context. The 401 body distinguishes a
// missing, malformed and expired token.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseBearer(c, jwt)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, authMessage(err), gin.H{"code": authCode(err)})
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserRoleKey, claims.Role)
		c.Next()
	}
}

// OptionalAuth sets the identity when a valid token is present but lets
// anonymous requests through. Invalid tokens are still rejected so a client
// never silently loses its identity.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseBearer(c, jwt)
		if err != nil {
			if errors.Is(err, helpers.ErrTokenMissing) {
				c.Next()
				return
			}
			response.AbortError(c, http.StatusUnauthorized, authMessage(err), gin.H{"code": authCode(err)})
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserRoleKey, claims.Role)
		c.Next()
	}
}

func parseBearer(c *gin.Context, jwt *helpers.JWTManager) (*helpers.Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, helpers.ErrTokenMissing
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, helpers.ErrTokenMalformed
	}
	return jwt.Parse(token)
}

func authCode(err error) string {
	switch {
	case errors.Is(err, helpers.ErrTokenMissing):
		return "token_missing"
	case errors.Is(err, helpers.ErrTokenExpired):
		return "token_expired"
	default:
		return "token_malformed"
	}
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, helpers.ErrTokenMissing):
		return "missing access token"
	case errors.Is(err, helpers.ErrTokenExpired):
		return "access token expired"
	default:
		return "malformed access token"
	}
}

// Identity builds the caller's identity from the Gin context, nil when
// the request is anonymous.
func Identity(c *gin.Context) *authz.Identity {
	uid := c.GetString(CtxUserIDKey)
	if uid == "" {
		return nil
	}
	return &authz.Identity{ID: uid, Role: c.GetString(CtxUserRoleKey)}
}
