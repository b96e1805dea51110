package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carmesh/carmesh/core"
)

func TestSearchFiltersByAllCriteria(t *testing.T) {
	s := NewInMemoryStore()

	cars, err := s.Search(context.Background(), core.SearchCriteria{
		MaxPrice: 1500000,
		FuelType: "Electric",
		Location: "Delhi",
	}, 10)
	require.NoError(t, err)
	require.Len(t, cars, 3)
	for _, car := range cars {
		assert.LessOrEqual(t, car.Price, 1500000)
		assert.Equal(t, "Electric", car.FuelType)
		assert.Equal(t, "Delhi", car.Location)
	}
}

func TestSearchOrdersByRatingThenPrice(t *testing.T) {
	s := NewEmptyStore()
	s.Add(core.Car{ID: "a", Make: "X", Model: "A", Price: 1000000, Rating: 4.0})
	s.Add(core.Car{ID: "b", Make: "X", Model: "B", Price: 900000, Rating: 4.5})
	s.Add(core.Car{ID: "c", Make: "X", Model: "C", Price: 800000, Rating: 4.0})

	cars, err := s.Search(context.Background(), core.SearchCriteria{}, 10)
	require.NoError(t, err)
	require.Len(t, cars, 3)
	assert.Equal(t, "b", cars[0].ID)
	assert.Equal(t, "c", cars[1].ID) // same rating as "a", cheaper first
	assert.Equal(t, "a", cars[2].ID)
}

func TestSearchLimitAndDefault(t *testing.T) {
	s := NewInMemoryStore()

	cars, err := s.Search(context.Background(), core.SearchCriteria{}, 2)
	require.NoError(t, err)
	assert.Len(t, cars, 2)

	cars, err = s.Search(context.Background(), core.SearchCriteria{}, 0)
	require.NoError(t, err)
	assert.Len(t, cars, 3)
}

func TestSearchCaseInsensitiveFields(t *testing.T) {
	s := NewInMemoryStore()

	cars, err := s.Search(context.Background(), core.SearchCriteria{
		FuelType: "electric",
		Location: "delhi",
		Make:     "tata",
	}, 10)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "Nexon EV", cars[0].Model)
}

func TestSearchNoMatches(t *testing.T) {
	s := NewInMemoryStore()

	cars, err := s.Search(context.Background(), core.SearchCriteria{Location: "Chennai"}, 10)
	require.NoError(t, err)
	assert.Empty(t, cars)
}

func TestMatchesZeroCriteria(t *testing.T) {
	assert.True(t, Matches(core.Car{ID: "x", Price: 1}, core.SearchCriteria{}))
}
