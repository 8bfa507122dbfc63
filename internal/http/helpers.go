package http

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/readonly"
	"github.com/mrlokans/bookshelf/internal/security"
)

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// On failure it records a bind error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, strconv.IntSize)
	if err != nil {
		abortWithBindError(c, fmt.Errorf("invalid %s %q: %w", paramName, idStr, err))
		return 0, false
	}
	return uint(id), true
}

// csrfToken returns the token stored by the CSRF middleware, or "" when
// CSRF protection is off.
func csrfToken(c *gin.Context) string {
	return c.GetString(security.ContextKeyCSRFToken)
}

// isReadOnly reports whether read-only mode was injected for this request.
func isReadOnly(c *gin.Context) bool {
	return c.GetBool(readonly.ContextKeyReadOnly)
}
