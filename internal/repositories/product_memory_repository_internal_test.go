package repositories

import (
	"testing"

	"katalog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProductRepository_NeverReissuesRetiredIDs(t *testing.T) {
	repo := NewMemoryProductRepository()
	ids := []string{"a", "a", "b", "a", "b", "c"}
	repo.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	f := models.ProductFields{Name: models.Ptr("x"), Description: models.Ptr("x"),
		Price: models.Ptr(1.0), Category: models.Ptr("x"), InStock: models.Ptr(true)}

	first, err := repo.Create(f)
	require.NoError(t, err)
	assert.Equal(t, "a", first.ID)

	// "a" is live, so the generator is asked again.
	second, err := repo.Create(f)
	require.NoError(t, err)
	assert.Equal(t, "b", second.ID)

	require.NoError(t, repo.Delete("a"))

	// "a" is retired and "b" is live.
	third, err := repo.Create(f)
	require.NoError(t, err)
	assert.Equal(t, "c", third.ID)
}
