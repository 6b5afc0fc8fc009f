package altitude

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// punoAltitudes lists towns of the Puno region with their elevation in
// meters above sea level. Used to seed the in-memory repository.
var punoAltitudes = map[string]int{
	"Puno":        3827,
	"Juliaca":     3825,
	"Ilave":       3850,
	"Ayaviri":     3907,
	"Azángaro":    3859,
	"Lampa":       3892,
	"Huancané":    3841,
	"Juli":        3869,
	"Yunguyo":     3826,
	"Desaguadero": 3808,
	"Putina":      3878,
	"Macusani":    4315,
	"Ananea":      4660,
	"Crucero":     4130,
	"Sandia":      2178,
	"San Gabán":   820,
	"Cuzco":       3399,
}

// InMemoryRepository is an in-memory implementation of Repository.
// Intended for testing and for running without a database.
type InMemoryRepository struct {
	mu        sync.RWMutex
	altitudes map[string]int
}

// NewInMemoryRepository creates an in-memory altitude repository seeded
// with the Puno region altitude table.
func NewInMemoryRepository() *InMemoryRepository {
	altitudes := make(map[string]int, len(punoAltitudes))
	for city, meters := range punoAltitudes {
		altitudes[strings.ToLower(city)] = meters
	}
	return &InMemoryRepository{altitudes: altitudes}
}

// NewEmptyInMemoryRepository creates an in-memory repository with no seed data.
func NewEmptyInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{altitudes: make(map[string]int)}
}

// Lookup returns the altitude in meters for a city.
func (r *InMemoryRepository) Lookup(_ context.Context, city string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meters, ok := r.altitudes[strings.ToLower(city)]
	if !ok {
		return 0, ErrCityNotFound
	}
	return meters, nil
}

// Cities returns all known city names, sorted.
func (r *InMemoryRepository) Cities(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cities := make([]string, 0, len(r.altitudes))
	for city := range r.altitudes {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities, nil
}

// Upsert adds or replaces the altitude for a city.
func (r *InMemoryRepository) Upsert(_ context.Context, city string, meters int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.altitudes[strings.ToLower(city)] = meters
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
