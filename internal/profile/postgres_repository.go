package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL profile repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const profileColumns = `
	user_id, age, sex, weight_kg, height_m, location, altitude_m,
	activity_level, water_baseline_ml, sleep_baseline_h,
	current_mental_activity, current_emotional_state, last_context_update,
	created_at
`

// Get retrieves a profile by user ID.
func (r *PostgresRepository) Get(ctx context.Context, userID string) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`

	var p Profile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Age,
		&p.Sex,
		&p.WeightKg,
		&p.HeightM,
		&p.Location,
		&p.AltitudeM,
		&p.ActivityLevel,
		&p.WaterBaselineML,
		&p.SleepBaselineH,
		&p.CurrentMentalActivity,
		&p.CurrentEmotionalState,
		&p.LastContextUpdate,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return &p, nil
}

// Create inserts a new profile. The ON CONFLICT guard makes concurrent
// duplicate creation idempotent at the data layer: the loser inserts
// nothing and gets ErrProfileExists.
func (r *PostgresRepository) Create(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO user_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query,
		p.UserID,
		p.Age,
		p.Sex,
		p.WeightKg,
		p.HeightM,
		p.Location,
		p.AltitudeM,
		p.ActivityLevel,
		p.WaterBaselineML,
		p.SleepBaselineH,
		p.CurrentMentalActivity,
		p.CurrentEmotionalState,
		p.LastContextUpdate,
		p.CreatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileExists
	}

	return nil
}

// Update replaces the stored profile for p.UserID.
func (r *PostgresRepository) Update(ctx context.Context, p *Profile) error {
	query := `
		UPDATE user_profiles SET
			age = $2,
			sex = $3,
			weight_kg = $4,
			height_m = $5,
			location = $6,
			altitude_m = $7,
			activity_level = $8,
			water_baseline_ml = $9,
			sleep_baseline_h = $10,
			current_mental_activity = $11,
			current_emotional_state = $12,
			last_context_update = $13
		WHERE user_id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.UserID,
		p.Age,
		p.Sex,
		p.WeightKg,
		p.HeightM,
		p.Location,
		p.AltitudeM,
		p.ActivityLevel,
		p.WaterBaselineML,
		p.SleepBaselineH,
		p.CurrentMentalActivity,
		p.CurrentEmotionalState,
		p.LastContextUpdate,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// Delete removes a user's profile.
func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
