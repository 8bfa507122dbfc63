// Package interfaces documents the core abstractions used throughout the application.
//
// Interfaces are declared where they are consumed, and this package only holds
// compile-time checks that the concrete types still satisfy them.
//
// # Data Access Interfaces
//
//   - BookStore: persistence gateway for books (internal/http/books.go),
//     implemented by books.Repository (internal/database/books)
//   - Pinger: database liveness for /health (internal/http/health.go),
//     implemented by database.Database
//
// # Session Interfaces
//
//   - FlashStore: one-shot messages shown after a redirect
//     (internal/http/books.go), implemented by sessions.Manager
//
// # Adding a New Storage Backend
//
//  1. Add a driver constant in internal/config/constants.go
//  2. Return its GORM dialector from database.Dialector
//  3. Add an integration test next to internal/database/books/postgres_test.go
//
// A store that does not use GORM only needs to implement http.BookStore and be
// passed to http.RouterConfig in internal/entrypoint.
package interfaces
