package http

import (
	"html/template"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/security"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(logging.GinMiddleware(logger))
	router.Use(gin.Recovery())
	router.Use(ErrorPageMiddleware(logger))

	// Apply security headers to all responses
	router.Use(security.HeadersMiddleware())

	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Sessions back the flash messages shown after save and delete
	var flash FlashStore
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.LoadSave())
		flash = cfg.SessionManager
	}

	if cfg.ReadOnly != nil && cfg.ReadOnly.IsEnabled() {
		router.Use(cfg.ReadOnly.InjectContext())
		router.Use(cfg.ReadOnly.Handler())
	}

	tmpl := template.Must(LoadTemplates(cfg.TemplatesPath))
	router.SetHTMLTemplate(tmpl)

	if cfg.StaticPath != "" {
		if info, err := os.Stat(cfg.StaticPath); err == nil && info.IsDir() {
			router.Static("/static", cfg.StaticPath)
		} else {
			logger.Warn("static directory not found, /static disabled", zap.String("path", cfg.StaticPath))
		}
	}

	health := NewHealthController(cfg.Version, DatabaseCheck(cfg.Database))
	booksController := NewBooksController(cfg.BookStore, flash)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, booksPath)
	})

	books := router.Group(booksPath)
	books.GET("", booksController.ListBooks)
	books.GET("/new", booksController.NewBookForm)
	books.GET("/edit/:id", booksController.EditBookForm)
	books.POST("/save", booksController.SaveBook)
	books.GET("/delete/:id", booksController.DeleteBook)

	return router
}
