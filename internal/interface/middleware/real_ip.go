package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// proxyIPHeaders, in trust order. X-Forwarded-For is scanned left-most
// first since that entry is the originating client.
var proxyIPHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

// RealIP resolves the originating client IP through known proxy
// headers and stores it in the gin context (key "real_ip"). The rate
// limiter keys off this value, so it must be set before any limited
// route runs.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", resolveClientIP(c))
		c.Next()
	}
}

func resolveClientIP(c *gin.Context) string {
	for _, h := range proxyIPHeaders {
		v := c.GetHeader(h)
		if v == "" {
			continue
		}
		candidate := v
		if i := strings.IndexByte(v, ','); i >= 0 {
			candidate = v[:i]
		}
		candidate = strings.TrimSpace(candidate)
		if ip := net.ParseIP(candidate); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
