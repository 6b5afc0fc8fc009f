package records

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use MongoRepository.
type InMemoryRepository struct {
	mu   sync.RWMutex
	recs []*Record
}

// NewInMemoryRepository creates a new in-memory record repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Insert appends a new record.
func (r *InMemoryRepository) Insert(_ context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *rec
	r.recs = append(r.recs, &cpy)
	return nil
}

// FindLatest returns the most recent record of the given kind for a user.
func (r *InMemoryRepository) FindLatest(ctx context.Context, userID string, kind Kind, since time.Time) (*Record, error) {
	recs, err := r.FindRecent(ctx, userID, kind, FindOptions{Since: since, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return recs[0], nil
}

// FindRecent returns records of the given kind ordered most recent first.
func (r *InMemoryRepository) FindRecent(_ context.Context, userID string, kind Kind, opts FindOptions) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Record
	for _, rec := range r.recs {
		if rec.UserID != userID || rec.Kind != kind {
			continue
		}
		if !opts.Since.IsZero() && rec.Timestamp.Before(opts.Since) {
			continue
		}
		cpy := *rec
		matched = append(matched, &cpy)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}

	return matched, nil
}

// Count returns the total number of stored records. Test helper.
func (r *InMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.recs)
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
