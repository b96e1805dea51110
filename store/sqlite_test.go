package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carmesh/carmesh/core"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "listings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteSeedsOnFirstOpen(t *testing.T) {
	s := newTestSQLiteStore(t)

	cars, err := s.Search(context.Background(), core.SearchCriteria{}, 10)
	require.NoError(t, err)
	assert.Len(t, cars, len(seedInventory))
}

func TestSQLiteSearchMatchesMemoryOrdering(t *testing.T) {
	ctx := context.Background()
	sqlite := newTestSQLiteStore(t)
	mem := NewInMemoryStore()

	criteria := core.SearchCriteria{MaxPrice: 1500000, FuelType: "Electric", Location: "Delhi"}

	fromSQLite, err := sqlite.Search(ctx, criteria, 3)
	require.NoError(t, err)
	fromMem, err := mem.Search(ctx, criteria, 3)
	require.NoError(t, err)

	require.Len(t, fromSQLite, len(fromMem))
	for i := range fromMem {
		assert.Equal(t, fromMem[i].ID, fromSQLite[i].ID)
	}
}

func TestSQLiteAddRoundTripsFeatures(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	err := s.Add(ctx, core.Car{
		ID: "car_900", Make: "Mahindra", Model: "XUV400", Year: 2024,
		Price: 1550000, FuelType: "Electric", Location: "Pune", Rating: 4.0,
		Features: []string{"Fast Charging", "Sunroof"},
	})
	require.NoError(t, err)

	cars, err := s.Search(ctx, core.SearchCriteria{Make: "Mahindra"}, 5)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, []string{"Fast Charging", "Sunroof"}, cars[0].Features)
}

func TestSQLiteDoesNotReseedExistingCatalog(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "listings.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Add(ctx, core.Car{
		ID: "car_901", Make: "Maruti", Model: "eVX", Year: 2025,
		Price: 1700000, FuelType: "Electric", Location: "Delhi", Rating: 3.9,
	}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	cars, err := s.Search(ctx, core.SearchCriteria{}, 50)
	require.NoError(t, err)
	assert.Len(t, cars, len(seedInventory)+1)
}
