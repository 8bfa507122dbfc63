// Package readonly blocks mutating requests when the application runs in
// read-only mode.
package readonly

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyReadOnly is set on every request while read-only mode is on,
// so templates can hide edit controls.
const ContextKeyReadOnly = "read_only"

const blockedMessage = "This action is disabled in read-only mode"

// Middleware blocks write operations in read-only mode. Any method other
// than GET, HEAD and OPTIONS is blocked. GET requests are blocked too when
// their path starts with one of the configured mutating prefixes, for
// routes that change state over GET.
type Middleware struct {
	enabled          bool
	mutatingGETPaths []string
}

// NewMiddleware creates a read-only middleware.
func NewMiddleware(enabled bool, mutatingGETPaths ...string) *Middleware {
	return &Middleware{enabled: enabled, mutatingGETPaths: mutatingGETPaths}
}

// IsEnabled returns whether read-only mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet:
			if m.isMutatingGET(c.Request.URL.Path) {
				m.respondBlocked(c)
				return
			}
			c.Next()
		case http.MethodHead, http.MethodOptions:
			c.Next()
		default:
			m.respondBlocked(c)
		}
	}
}

func (m *Middleware) isMutatingGET(path string) bool {
	for _, prefix := range m.mutatingGETPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (m *Middleware) respondBlocked(c *gin.Context) {
	c.String(http.StatusForbidden, blockedMessage)
	c.Abort()
}

// InjectContext marks the request as read-only for template rendering.
func (m *Middleware) InjectContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)
		c.Next()
	}
}
