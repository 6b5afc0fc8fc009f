package profile

import (
	"context"
	"errors"
)

// Repository errors.
var (
	// ErrProfileNotFound is returned when a user has no profile.
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrProfileExists is returned by Create when a profile already exists
	// for the user. Callers treat this as "fetch and return the winner".
	ErrProfileExists = errors.New("user profile already exists")
)

// Repository defines the interface for profile persistence.
type Repository interface {
	// Get retrieves a profile by user ID.
	// Returns ErrProfileNotFound if the user has no profile.
	Get(ctx context.Context, userID string) (*Profile, error)

	// Create inserts a new profile. The insert is guarded by a uniqueness
	// constraint on user_id; a duplicate returns ErrProfileExists without
	// modifying the stored profile.
	Create(ctx context.Context, p *Profile) error

	// Update replaces the stored profile for p.UserID.
	Update(ctx context.Context, p *Profile) error

	// Delete removes a user's profile.
	Delete(ctx context.Context, userID string) error
}
