package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ping-Win-Info/insavente/pkg/helpers"
)

func newAuthRouter(t *testing.T, jwt *helpers.JWTManager, mw gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", mw, func(c *gin.Context) {
		id := Identity(c)
		if id == nil {
			c.JSON(http.StatusOK, gin.H{"user": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": id.ID, "role": id.Role})
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsByCode(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(t, jwt, Auth(jwt))

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token_missing")

	w = get(r, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token_malformed")

	frozen := time.Now()
	expiring := helpers.NewJWTManager("secret", time.Second).WithClock(func() time.Time { return frozen })
	token, _, err := expiring.Generate("u1", "member")
	require.NoError(t, err)
	expiring.WithClock(func() time.Time { return frozen.Add(2 * time.Second) })
	r = newAuthRouter(t, expiring, Auth(expiring))
	w = get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token_expired")
}

func TestAuthSetsIdentity(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	token, _, err := jwt.Generate("u1", "admin")
	require.NoError(t, err)

	r := newAuthRouter(t, jwt, Auth(jwt))
	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":"u1"`)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestOptionalAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(t, jwt, OptionalAuth(jwt))

	// Anonymous requests pass through with no identity.
	w := get(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":""`)

	// A valid token still sets the identity.
	token, _, err := jwt.Generate("u2", "member")
	require.NoError(t, err)
	w = get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":"u2"`)

	// A bad token is rejected, never silently downgraded to anonymous.
	w = get(r, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token_malformed")
}
