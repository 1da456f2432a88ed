package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tripdesk/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"success": true, "userID": userID})
	})
	r.GET("/admin", JWTAuthMiddleware(), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func useAuthCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := utils.AuthCacheClient
	utils.AuthCacheClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { utils.AuthCacheClient = prev })
	return mr
}

func issueToken(t *testing.T, role string) string {
	t.Helper()
	token, err := utils.GenerateToken("user-1", "alice@example.com", role, time.Hour)
	require.NoError(t, err)
	return token
}

func protectedRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	mr := useAuthCache(t)
	token := issueToken(t, "consultant")
	require.NoError(t, mr.Set(utils.AuthCachePrefix+"user-1", utils.HashToken(token)))

	w := protectedRequest(authRouter(), "/protected", token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	useAuthCache(t)

	w := protectedRequest(authRouter(), "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// A newer login overwrites the cached hash, killing the older token.
func TestJWTAuthMiddleware_SupersededToken(t *testing.T) {
	mr := useAuthCache(t)
	token := issueToken(t, "consultant")
	require.NoError(t, mr.Set(utils.AuthCachePrefix+"user-1", utils.HashToken("newer-token")))

	w := protectedRequest(authRouter(), "/protected", token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token revoked")
}

// A missing cache entry means the session idled past the cache TTL (or was
// revoked); either way the caller must log in again, and the message says
// expired rather than revoked.
func TestJWTAuthMiddleware_ExpiredSession(t *testing.T) {
	useAuthCache(t)
	token := issueToken(t, "consultant")

	w := protectedRequest(authRouter(), "/protected", token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session expired")
}

// When the cache is unreachable a validly signed token is accepted on its own.
func TestJWTAuthMiddleware_CacheUnavailableFallsOpen(t *testing.T) {
	mr := useAuthCache(t)
	token := issueToken(t, "consultant")
	mr.Close()

	w := protectedRequest(authRouter(), "/protected", token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	mr := useAuthCache(t)
	router := authRouter()

	admin := issueToken(t, "admin")
	require.NoError(t, mr.Set(utils.AuthCachePrefix+"user-1", utils.HashToken(admin)))
	w := protectedRequest(router, "/admin", admin)
	assert.Equal(t, http.StatusOK, w.Code)

	consultant := issueToken(t, "consultant")
	require.NoError(t, mr.Set(utils.AuthCachePrefix+"user-1", utils.HashToken(consultant)))
	w = protectedRequest(router, "/admin", consultant)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
