package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func requestFrom(remoteAddr string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestGetClientIP_ForwardedForFirstHop(t *testing.T) {
	c := requestFrom("10.0.0.1:4567", map[string]string{
		"X-Forwarded-For": "203.0.113.9, 10.0.0.2",
	})
	assert.Equal(t, "203.0.113.9", getClientIP(c))
}

func TestGetClientIP_UnparseableForwardedForIgnored(t *testing.T) {
	c := requestFrom("10.0.0.1:4567", map[string]string{
		"X-Forwarded-For": "not-an-ip",
		"X-Real-IP":       "198.51.100.7",
	})
	assert.Equal(t, "198.51.100.7", getClientIP(c))
}

func TestGetClientIP_RemoteAddrFallback(t *testing.T) {
	c := requestFrom("192.0.2.4:9999", nil)
	assert.Equal(t, "192.0.2.4", getClientIP(c))
}
