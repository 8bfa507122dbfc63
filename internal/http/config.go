package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/readonly"
	"github.com/mrlokans/bookshelf/internal/sessions"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	BookStore BookStore
	Database  Pinger
	Logger    *zap.Logger

	// UI paths
	TemplatesPath string // empty means embedded templates
	StaticPath    string

	// Application info
	Version string

	// CSRF protection, disabled when the secret is empty
	CSRFSecret    []byte
	SecureCookies bool

	// Flash messages, disabled when nil
	SessionManager *sessions.Manager

	// Read-only mode, disabled when nil
	ReadOnly *readonly.Middleware
}
