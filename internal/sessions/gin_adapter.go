package sessions

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
)

// commitWriter commits the session and sets its cookie right before the
// first header or body byte goes out. Gin flushes headers lazily, so a
// middleware that waited for c.Next to return would be too late.
type commitWriter struct {
	gin.ResponseWriter
	c         *gin.Context
	m         *Manager
	committed bool
}

func (w *commitWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true

	ctx := w.c.Request.Context()
	var (
		token  string
		expiry time.Time
	)
	switch w.m.Status(ctx) {
	case scs.Modified:
		var err error
		if token, expiry, err = w.m.Commit(ctx); err != nil {
			_ = w.c.Error(fmt.Errorf("commit session: %w", err))
			return
		}
	case scs.Destroyed:
		// empty token and zero expiry expire the cookie
	default:
		return
	}
	w.m.WriteSessionCookie(ctx, w.ResponseWriter, token, expiry)
}

func (w *commitWriter) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *commitWriter) WriteHeaderNow() {
	w.commit()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *commitWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *commitWriter) WriteString(s string) (int, error) {
	w.commit()
	return w.ResponseWriter.WriteString(s)
}

// LoadSave returns a Gin middleware that loads the session from the request
// cookie and saves it with the response. It must run before any handler
// touches the session.
func (m *Manager) LoadSave() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if cookie, err := c.Request.Cookie(m.Cookie.Name); err == nil {
			token = cookie.Value
		}

		ctx, err := m.Load(c.Request.Context(), token)
		if err != nil {
			_ = c.AbortWithError(http.StatusInternalServerError, fmt.Errorf("load session: %w", err))
			return
		}
		c.Request = c.Request.WithContext(ctx)

		w := &commitWriter{ResponseWriter: c.Writer, c: c, m: m}
		c.Writer = w

		c.Next()

		// Handlers that wrote nothing still get their cookie.
		w.commit()
	}
}
