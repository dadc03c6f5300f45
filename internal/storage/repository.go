package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tulumvibe/beachpulse/internal/conditions"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository provides database access for venue records.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// ListVenues returns every venue in the directory in insertion order.
// Category and beach-zone filtering happen in the aggregation layer.
func (r *Repository) ListVenues(ctx context.Context) ([]conditions.Venue, error) {
	const q = `
		SELECT id, place_id, name, category, lat, lng, rating, photo_url, website, created_at, updated_at
		FROM venues
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying venues: %w", err)
	}
	defer rows.Close()

	var venues []conditions.Venue
	for rows.Next() {
		var v conditions.Venue
		if err := rows.Scan(
			&v.ID,
			&v.PlaceID,
			&v.Name,
			&v.Category,
			&v.Lat,
			&v.Lng,
			&v.Rating,
			&v.PhotoURL,
			&v.Website,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning venue row: %w", err)
		}
		venues = append(venues, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating venue rows: %w", err)
	}

	return venues, nil
}

// GetVenueByPlaceID returns one venue, or nil, nil when not found.
func (r *Repository) GetVenueByPlaceID(ctx context.Context, placeID string) (*conditions.Venue, error) {
	const q = `
		SELECT id, place_id, name, category, lat, lng, rating, photo_url, website, created_at, updated_at
		FROM venues
		WHERE place_id = $1
	`

	var v conditions.Venue
	err := r.q.QueryRow(ctx, q, placeID).Scan(
		&v.ID,
		&v.PlaceID,
		&v.Name,
		&v.Category,
		&v.Lat,
		&v.Lng,
		&v.Rating,
		&v.PhotoURL,
		&v.Website,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying venue %s: %w", placeID, err)
	}

	return &v, nil
}

// UpsertVenue inserts or updates a venue record keyed by place_id.
// Used by the external directory sync, not by request handling.
func (r *Repository) UpsertVenue(ctx context.Context, v conditions.Venue) error {
	const q = `
		INSERT INTO venues (place_id, name, category, lat, lng, rating, photo_url, website, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (place_id) DO UPDATE
		SET name       = EXCLUDED.name,
		    category   = EXCLUDED.category,
		    lat        = EXCLUDED.lat,
		    lng        = EXCLUDED.lng,
		    rating     = EXCLUDED.rating,
		    photo_url  = EXCLUDED.photo_url,
		    website    = EXCLUDED.website,
		    updated_at = EXCLUDED.updated_at
	`

	if _, err := r.q.Exec(ctx, q, v.PlaceID, v.Name, v.Category, v.Lat, v.Lng, v.Rating, v.PhotoURL, v.Website); err != nil {
		return fmt.Errorf("upserting venue %s: %w", v.PlaceID, err)
	}

	return nil
}
