package repository

import (
	"context"
	"testing"
	"time"

	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/estudiarq/archisheets/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stub(id, name, sheetID string, isTemplate bool) *domain.Project {
	return &domain.Project{
		ID:         id,
		Name:       name,
		SheetID:    sheetID,
		IsTemplate: isTemplate,
		CreatedAt:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCatalogCache_ReplaceAndList(t *testing.T) {
	cache := NewSQLiteCatalogCache(testutil.NewTestDB(t))
	ctx := context.Background()

	err := cache.Replace(ctx, []*domain.Project{
		stub("p1", "Casa Pere", "sheet-1", false),
		stub("p2", "PLANTILLA: Bàsic", "sheet-2", true),
	})
	require.NoError(t, err)

	projects, err := cache.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Casa Pere", projects[0].Name)
	assert.Equal(t, "sheet-1", projects[0].SheetID)
	assert.True(t, projects[1].IsTemplate)
	assert.Equal(t, 2024, projects[0].CreatedAt.Year())
}

func TestCatalogCache_Replace_SwapsWholesale(t *testing.T) {
	cache := NewSQLiteCatalogCache(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, cache.Replace(ctx, []*domain.Project{stub("p1", "Old", "s1", false)}))
	require.NoError(t, cache.Replace(ctx, []*domain.Project{stub("p2", "New", "s2", false)}))

	projects, err := cache.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "New", projects[0].Name)
}

func TestCatalogCache_Put_VisibleBeforeReplace(t *testing.T) {
	// A freshly created project goes into the cache immediately, ahead
	// of the next full catalog fetch.
	cache := NewSQLiteCatalogCache(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, cache.Replace(ctx, []*domain.Project{stub("p1", "Casa Pere", "sheet-1", false)}))
	require.NoError(t, cache.Put(ctx, stub("p2", "Nova Obra", "sheet-2", false)))

	projects, err := cache.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Nova Obra", projects[1].Name, "puts append after existing rows")
}

func TestCatalogCache_Put_UpsertsByID(t *testing.T) {
	cache := NewSQLiteCatalogCache(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, stub("p1", "Before", "s1", false)))
	require.NoError(t, cache.Put(ctx, stub("p1", "After", "s1", false)))

	projects, err := cache.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "After", projects[0].Name)
}

func TestCatalogCache_GetBySheetID(t *testing.T) {
	cache := NewSQLiteCatalogCache(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, stub("p1", "Casa Pere", "sheet-1", false)))

	p, err := cache.GetBySheetID(ctx, "sheet-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "p1", p.ID)

	missing, err := cache.GetBySheetID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCatalogCache_Remove(t *testing.T) {
	cache := NewSQLiteCatalogCache(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, stub("p1", "Casa Pere", "sheet-1", false)))
	require.NoError(t, cache.Remove(ctx, "p1"))

	projects, err := cache.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}
