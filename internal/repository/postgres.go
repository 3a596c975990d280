package repository

import (
	"context"
	"errors"
	"fmt"

	"placelog-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPlaceNotFound is returned when no place visit exists for the given id.
var ErrPlaceNotFound = errors.New("repository: place not found")

// ErrDuplicatePlace is returned when inserting a place whose id already exists.
var ErrDuplicatePlace = errors.New("repository: place already exists")

// Repository implements the place visit store on PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the place_visits table if it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS place_visits (
			place_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("repository: failed to ensure schema: %w", err)
	}
	return nil
}

// ListPlaces returns every saved place visit ordered by name ascending. This
// ordering is the one the region reconciler's first-N selection is defined over.
func (r *Repository) ListPlaces(ctx context.Context) ([]models.PlaceVisit, error) {
	sql := `
		SELECT place_id, name, latitude, longitude, notes
		FROM place_visits
		ORDER BY name ASC, place_id ASC
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list places: %w", err)
	}
	defer rows.Close()

	var places []models.PlaceVisit
	for rows.Next() {
		var p models.PlaceVisit
		err := rows.Scan(&p.PlaceID, &p.Name, &p.Latitude, &p.Longitude, &p.Notes)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan place: %w", err)
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return places, nil
}

// GetPlace returns the place visit with the given id, or ErrPlaceNotFound.
func (r *Repository) GetPlace(ctx context.Context, placeID string) (*models.PlaceVisit, error) {
	sql := `
		SELECT place_id, name, latitude, longitude, notes
		FROM place_visits
		WHERE place_id = $1
	`

	var p models.PlaceVisit
	err := r.db.QueryRow(ctx, sql, placeID).Scan(&p.PlaceID, &p.Name, &p.Latitude, &p.Longitude, &p.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("repository: failed to get place: %w", err)
	}

	return &p, nil
}

// InsertPlace stores a new place visit. A place_id unique-constraint violation
// is surfaced as ErrDuplicatePlace.
func (r *Repository) InsertPlace(ctx context.Context, place models.PlaceVisit) error {
	sql := `
		INSERT INTO place_visits (place_id, name, latitude, longitude, notes)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, sql, place.PlaceID, place.Name, place.Latitude, place.Longitude, place.Notes)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePlace
		}
		return fmt.Errorf("repository: failed to insert place: %w", err)
	}

	return nil
}

// UpdatePlace rewrites the mutable fields of an existing place visit.
func (r *Repository) UpdatePlace(ctx context.Context, place models.PlaceVisit) error {
	sql := `
		UPDATE place_visits
		SET name = $2, latitude = $3, longitude = $4, notes = $5, updated_at = now()
		WHERE place_id = $1
	`

	tag, err := r.db.Exec(ctx, sql, place.PlaceID, place.Name, place.Latitude, place.Longitude, place.Notes)
	if err != nil {
		return fmt.Errorf("repository: failed to update place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlaceNotFound
	}

	return nil
}

// DeletePlace removes the place visit with the given id.
func (r *Repository) DeletePlace(ctx context.Context, placeID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM place_visits WHERE place_id = $1`, placeID)
	if err != nil {
		return fmt.Errorf("repository: failed to delete place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlaceNotFound
	}

	return nil
}

// CountPlaces returns the number of saved place visits.
func (r *Repository) CountPlaces(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM place_visits`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to count places: %w", err)
	}
	return count, nil
}
