// Package store provides listing inventories behind core.ListingStore: a
// seeded in-memory store for development and tests, and a SQLite-backed
// store for persistent catalogs.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/carmesh/carmesh/core"
)

// InMemoryStore is a process-local core.ListingStore. Results are ordered
// by rating descending, then price ascending, so identical queries return
// identical slices.
type InMemoryStore struct {
	mu   sync.RWMutex
	cars []core.Car
}

// NewInMemoryStore creates a store seeded with the built-in inventory.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{cars: append([]core.Car(nil), seedInventory...)}
}

// NewEmptyStore creates a store with no listings.
func NewEmptyStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Add appends a listing.
func (s *InMemoryStore) Add(car core.Car) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cars = append(s.cars, car)
}

// Search implements core.ListingStore.
func (s *InMemoryStore) Search(ctx context.Context, criteria core.SearchCriteria, limit int) ([]core.Car, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 3
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []core.Car
	for _, car := range s.cars {
		if Matches(car, criteria) {
			matches = append(matches, car)
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].Rating != matches[b].Rating {
			return matches[a].Rating > matches[b].Rating
		}
		return matches[a].Price < matches[b].Price
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Matches reports whether a listing satisfies every set criteria field.
// Unset fields (zero values) match everything.
func Matches(car core.Car, c core.SearchCriteria) bool {
	if c.MaxPrice > 0 && car.Price > c.MaxPrice {
		return false
	}
	if c.FuelType != "" && !strings.EqualFold(car.FuelType, c.FuelType) {
		return false
	}
	if c.Location != "" && !strings.EqualFold(car.Location, c.Location) {
		return false
	}
	if c.Make != "" && !strings.EqualFold(car.Make, c.Make) {
		return false
	}
	if c.MinYear > 0 && car.Year < c.MinYear {
		return false
	}
	return true
}

// seedInventory is the built-in development catalog. Prices are rupees.
var seedInventory = []core.Car{
	{
		ID: "car_001", Make: "Tata", Model: "Nexon EV", Year: 2023,
		Price: 1400000, FuelType: "Electric", Location: "Delhi", Rating: 4.2,
		Features: []string{"Fast Charging", "Connected Car Tech", "Sunroof"},
	},
	{
		ID: "car_002", Make: "MG", Model: "ZS EV", Year: 2023,
		Price: 1350000, FuelType: "Electric", Location: "Delhi", Rating: 4.0,
		Features: []string{"AI Assistant", "Panoramic Sunroof", "419km Range"},
	},
	{
		ID: "car_003", Make: "Hyundai", Model: "Kona Electric", Year: 2023,
		Price: 1450000, FuelType: "Electric", Location: "Delhi", Rating: 4.3,
		Features: []string{"Premium Interior", "Wireless Charging", "BlueLink"},
	},
	{
		ID: "car_004", Make: "Tata", Model: "Harrier", Year: 2023,
		Price: 1600000, FuelType: "Diesel", Location: "Mumbai", Rating: 4.1,
		Features: []string{"Panoramic Sunroof", "JBL Audio", "Terrain Modes"},
	},
	{
		ID: "car_005", Make: "Hyundai", Model: "Creta", Year: 2023,
		Price: 1200000, FuelType: "Petrol", Location: "Bangalore", Rating: 4.4,
		Features: []string{"Ventilated Seats", "Bose Audio", "ADAS"},
	},
}
