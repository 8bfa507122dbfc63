// Package sessions wraps scs for the flash messages shown after a redirect.
package sessions

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

const sessionKeyFlash = "flash"

const createSessionsTable = `CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	expiry REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`

// Options configures the session cookie.
type Options struct {
	Lifetime      time.Duration
	SecureCookies bool
}

// Manager wraps scs.SessionManager with application-specific methods.
type Manager struct {
	*scs.SessionManager
}

// NewSQLiteManager stores sessions in the application's SQLite database.
// sqlDB should be the *sql.DB underlying GORM.
func NewSQLiteManager(sqlDB *sql.DB, opts Options) (*Manager, error) {
	if _, err := sqlDB.Exec(createSessionsTable); err != nil {
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return newManager(sqlite3store.New(sqlDB), opts), nil
}

// NewMemoryManager keeps sessions in process memory. Used when the database
// is not SQLite; flash messages are short-lived so losing them on restart
// is acceptable.
func NewMemoryManager(opts Options) *Manager {
	return newManager(memstore.New(), opts)
}

func newManager(store scs.Store, opts Options) *Manager {
	sm := scs.New()
	sm.Store = store

	if opts.Lifetime > 0 {
		sm.Lifetime = opts.Lifetime
	}

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = opts.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}
}

// Flash stores a message to be shown once on the next page.
func (m *Manager) Flash(ctx context.Context, message string) {
	m.Put(ctx, sessionKeyFlash, message)
}

// PopFlash returns and clears the pending flash message.
func (m *Manager) PopFlash(ctx context.Context) string {
	return m.PopString(ctx, sessionKeyFlash)
}
