// Package altitude resolves location names to their elevation in meters.
package altitude

import (
	"context"
	"errors"
	"strings"
)

// ErrCityNotFound is returned when a location has no known altitude.
var ErrCityNotFound = errors.New("city not found in altitude table")

// Repository defines the interface for the city→altitude lookup table.
type Repository interface {
	// Lookup returns the altitude in meters for a city.
	// Returns ErrCityNotFound if the city is not in the table.
	Lookup(ctx context.Context, city string) (int, error)

	// Cities returns all known city names, sorted.
	Cities(ctx context.Context) ([]string, error)

	// Upsert adds or replaces the altitude for a city.
	Upsert(ctx context.Context, city string, meters int) error
}

// Service provides altitude resolution over a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new altitude service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve returns the altitude in meters for a location name.
// The lookup is case-insensitive on the city name.
func (s *Service) Resolve(ctx context.Context, city string) (int, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return 0, ErrCityNotFound
	}
	return s.repo.Lookup(ctx, city)
}

// Cities returns all locations the service can resolve.
func (s *Service) Cities(ctx context.Context) ([]string, error) {
	return s.repo.Cities(ctx)
}

// SetAltitude adds or updates a city's altitude.
func (s *Service) SetAltitude(ctx context.Context, city string, meters int) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return ErrCityNotFound
	}
	return s.repo.Upsert(ctx, city, meters)
}
