package books

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestRepository_Seed(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	samples := SampleBooks()
	saved, err := repo.Seed(ctx, samples)
	require.NoError(t, err)
	assert.Equal(t, len(samples), saved)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(samples))
	assert.Equal(t, "Meditations", all[0].Title)
	for _, book := range samples {
		assert.Zero(t, book.ID, "input slice must not be modified")
	}
}

func TestRepository_Seed_IgnoresInputIDs(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := repo.Save(ctx, &entities.Book{Title: "Existing"})
	require.NoError(t, err)

	saved, err := repo.Seed(ctx, []entities.Book{{ID: 1, Title: "Duplicate id"}})
	require.NoError(t, err)
	assert.Equal(t, 1, saved)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	existing, ok, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Existing", existing.Title)
}
