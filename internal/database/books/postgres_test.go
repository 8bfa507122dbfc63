package books

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// startPostgresContainer runs a throwaway PostgreSQL container. The test is
// skipped when Docker is not reachable or BOOKSHELF_SKIP_DOCKER is set.
func startPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	if os.Getenv("BOOKSHELF_SKIP_DOCKER") != "" {
		t.Skip("BOOKSHELF_SKIP_DOCKER is set")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("could not connect to Docker: %v", err)
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=books",
		"POSTGRES_PASSWORD=books",
		"POSTGRES_DB=books",
	})
	if err != nil {
		t.Fatalf("failed to start postgres: %+v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%s user=books password=books dbname=books sslmode=disable",
		resource.GetPort("5432/tcp"))

	var db *gorm.DB
	err = pool.Retry(func() error {
		var e error
		db, e = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if e != nil {
			return e
		}
		sqlDB, e := db.DB()
		if e != nil {
			return e
		}
		return sqlDB.Ping()
	})
	if err != nil {
		_ = pool.Purge(resource)
		t.Fatalf("postgres never became ready: %+v", err)
	}

	destroy := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		if err := pool.Purge(resource); err != nil {
			t.Logf("failed to purge resource: %+v", err)
		}
	}
	return db, destroy
}

func TestRepository_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db, destroy := startPostgresContainer(t)
	defer destroy()

	require.NoError(t, db.AutoMigrate(&entities.Book{}))
	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("insert assigns id", func(t *testing.T) {
		book, err := repo.Save(ctx, &entities.Book{Title: "X", Author: "A"})
		require.NoError(t, err)
		assert.Equal(t, uint(1), book.ID)
	})

	t.Run("update overwrites", func(t *testing.T) {
		_, err := repo.Save(ctx, &entities.Book{ID: 1, Title: "Y", Author: "A"})
		require.NoError(t, err)

		book, ok, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Y", book.Title)
	})

	t.Run("delete missing is a no-op", func(t *testing.T) {
		require.NoError(t, repo.DeleteByID(ctx, 77))

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("delete removes row", func(t *testing.T) {
		require.NoError(t, repo.DeleteByID(ctx, 1))

		books, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}
