// Command seed_books fills a database with sample public domain books.
// Usage: go run ./cmd/seed_books [-db path/to/bookshelf.db] [-fresh]
package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/logging"
)

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the sqlite database file")
	fresh := flag.Bool("fresh", false, "delete the database file before seeding")
	flag.Parse()

	logger, flush, err := logging.New(config.Log{Level: "info", Format: "console"}, "seed")
	if err != nil {
		panic(err)
	}
	defer flush()

	if *fresh {
		if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
			logger.Fatal("failed to remove existing database", zap.Error(err))
		}
	}

	db, err := database.NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     *dbPath,
		LogLevel: "warn",
	})
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)
	saved, err := repo.Seed(context.Background(), books.SampleBooks())
	if err != nil {
		logger.Fatal("seeding failed", zap.Int("saved", saved), zap.Error(err))
	}

	logger.Info("database seeded", zap.String("path", *dbPath), zap.Int("books", saved))
}
