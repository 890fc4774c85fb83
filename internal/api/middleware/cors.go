package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowHeaders = "Content-Type, Content-Length, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID"
	corsAllowMethods = "GET, POST, DELETE, OPTIONS"
)

// OriginPolicy decides which browser origins may call the service. An
// entry of "*" admits any origin, but credentials are only ever granted
// to origins listed explicitly.
type OriginPolicy struct {
	exact    map[string]struct{}
	wildcard bool
}

// NewOriginPolicy builds a policy from origins such as "https://app.example.com"
func NewOriginPolicy(allowed []string) *OriginPolicy {
	p := &OriginPolicy{exact: make(map[string]struct{}, len(allowed))}
	for _, o := range allowed {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch o {
		case "":
		case "*":
			p.wildcard = true
		default:
			p.exact[o] = struct{}{}
		}
	}
	return p
}

// Allows reports whether origin may call the service and whether it may
// do so with credentials.
func (p *OriginPolicy) Allows(origin string) (allowed, credentials bool) {
	if _, ok := p.exact[origin]; ok {
		return true, true
	}
	return p.wildcard, false
}

// CORS answers cross-origin requests from the allowed origins only
func CORS(allowed []string) gin.HandlerFunc {
	policy := NewOriginPolicy(allowed)

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Add("Vary", "Origin")

		ok, credentials := policy.Allows(origin)
		if !ok {
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		if credentials {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
		} else {
			h.Set("Access-Control-Allow-Origin", "*")
		}
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Set("Access-Control-Expose-Headers", RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			h.Set("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
