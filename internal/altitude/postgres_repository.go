package altitude

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

// NewPostgresRepository creates a new PostgreSQL altitude repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Lookup returns the altitude in meters for a city.
func (r *PostgresRepository) Lookup(ctx context.Context, city string) (int, error) {
	query := `
		SELECT altitude_m
		FROM city_altitudes
		WHERE lower(city) = lower($1)
	`

	var meters int
	err := r.pool.QueryRow(ctx, query, city).Scan(&meters)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrCityNotFound
		}
		return 0, err
	}

	return meters, nil
}

// Cities returns all known city names, sorted.
func (r *PostgresRepository) Cities(ctx context.Context) ([]string, error) {
	query := `SELECT city FROM city_altitudes ORDER BY city`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}

	return cities, rows.Err()
}

// Upsert adds or replaces the altitude for a city.
func (r *PostgresRepository) Upsert(ctx context.Context, city string, meters int) error {
	query := `
		INSERT INTO city_altitudes (city, altitude_m)
		VALUES ($1, $2)
		ON CONFLICT (city) DO UPDATE SET altitude_m = EXCLUDED.altitude_m
	`

	_, err := r.pool.Exec(ctx, query, city, meters)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
