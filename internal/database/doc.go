// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Driver selection, connection setup, migrations
//	└── books/           # Book persistence gateway
//
// # Usage
//
//	db, err := database.NewDatabase(cfg.Database)
//	booksRepo := books.NewRepository(db.DB)
//
//	book, found, err := booksRepo.FindByID(ctx, 123)
//
// # Drivers
//
// DATABASE_DRIVER selects the GORM dialector. "sqlite" (default) opens
// DATABASE_PATH, "postgres" opens DATABASE_DSN. The schema is created with
// AutoMigrate on every start.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add the entity to AutoMigrate in NewDatabase
//  5. Add compile-time interface check in internal/interfaces/checks.go
package database
