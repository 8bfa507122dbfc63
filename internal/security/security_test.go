package security

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(HeadersMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Host = "books.example.com"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	csp := w.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "frame-ancestors 'none'")
	assert.Contains(t, csp, "form-action 'self' https://books.example.com")
	assert.NotEmpty(t, w.Header().Get("Permissions-Policy"))
}

func newCSRFRouter(handlerCalls *int) *gin.Engine {
	router := gin.New()
	router.Use(CSRFMiddleware(testSecret, false))
	router.GET("/form", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextKeyCSRFToken))
	})
	router.POST("/submit", func(c *gin.Context) {
		*handlerCalls++
		c.Status(http.StatusOK)
	})
	return router
}

func TestCSRFMiddleware_AllowsGET(t *testing.T) {
	calls := 0
	router := newCSRFRouter(&calls)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String(), "token should be exposed in context")
}

func TestCSRFMiddleware_BlocksPOSTWithoutToken(t *testing.T) {
	calls := 0
	router := newCSRFRouter(&calls)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, calls, "handler must not run after a CSRF failure")
}

func TestCSRFMiddleware_AcceptsValidToken(t *testing.T) {
	calls := 0
	router := newCSRFRouter(&calls)

	getW := httptest.NewRecorder()
	router.ServeHTTP(getW, httptest.NewRequest(http.MethodGet, "/form", nil))
	require.Equal(t, http.StatusOK, getW.Code)
	token := getW.Body.String()
	cookies := getW.Result().Cookies()
	require.NotEmpty(t, cookies)

	form := url.Values{CSRFFieldName: {token}}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, calls)
}

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)
	assert.Len(t, secret, 64)
	assert.Len(t, DecodeSecret(secret), 32)
}

func TestDecodeSecret(t *testing.T) {
	assert.Equal(t, []byte{0xab, 0xcd}, DecodeSecret("abcd"))
	assert.Equal(t, []byte("not hex!"), DecodeSecret("not hex!"))
}
