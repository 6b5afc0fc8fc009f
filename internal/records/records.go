// Package records provides the append-only store for per-user analysis records.
//
// Every pipeline stage persists its output as an immutable, timestamped
// record before the next stage runs. Records are never updated in place;
// readers that need a single current value take the most recent one.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the type of a stored record.
type Kind string

// Record kinds produced by the analysis pipeline.
const (
	KindPhysioState     Kind = "physio_state"
	KindFatigueAnalysis Kind = "fatigue_analysis"
	KindRecoveryPlan    Kind = "recovery_plan"
)

// ErrNotFound is returned when no record matches a point lookup.
var ErrNotFound = errors.New("record not found")

// Record is the envelope for one persisted pipeline output.
type Record struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Kind      Kind            `json:"kind"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// FindOptions narrows range queries over a user's records.
type FindOptions struct {
	// Since excludes records older than this instant. Zero means unbounded.
	Since time.Time

	// Limit caps the number of returned records. Zero means no cap.
	Limit int
}

// Repository defines the interface for the append-only record store.
type Repository interface {
	// Insert appends a new record. Records are immutable once written.
	Insert(ctx context.Context, rec *Record) error

	// FindLatest returns the most recent record of the given kind for a user,
	// optionally restricted to records at or after since (zero = unbounded).
	// Returns ErrNotFound if there is none.
	FindLatest(ctx context.Context, userID string, kind Kind, since time.Time) (*Record, error)

	// FindRecent returns records of the given kind for a user ordered most
	// recent first.
	FindRecent(ctx context.Context, userID string, kind Kind, opts FindOptions) ([]*Record, error)
}

// Decode unmarshals the record payload into v.
func (r *Record) Decode(v any) error {
	return json.Unmarshal(r.Payload, v)
}

// Marshal wraps a payload value into a new record envelope.
func Marshal(userID string, kind Kind, ts time.Time, payload any) (*Record, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:        "rec_" + uuid.New().String()[:22],
		UserID:    userID,
		Kind:      kind,
		Timestamp: ts,
		Payload:   raw,
	}, nil
}
