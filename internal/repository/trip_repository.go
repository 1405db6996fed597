package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/trip-service/internal/domain"
)

// TripRepository defines persistence access for trips.
type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) error
	Update(ctx context.Context, trip *domain.Trip) error
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]domain.Trip, error)
	Delete(ctx context.Context, id int64) error
}

type tripRepository struct {
	pool *pgxpool.Pool
}

// NewTripRepository returns a Postgres-backed implementation.
func NewTripRepository(pool *pgxpool.Pool) TripRepository {
	return &tripRepository{pool: pool}
}

const tripColumns = `id, name, start_time, end_time, longitude, latitude, price, category, guide_id, created_at, updated_at`

func (r *tripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	const query = `
        INSERT INTO trips (name, start_time, end_time, longitude, latitude, price, category, guide_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		trip.Name,
		trip.StartTime,
		trip.EndTime,
		trip.Longitude,
		trip.Latitude,
		trip.Price,
		trip.Category,
		trip.GuideID,
	).Scan(&trip.ID, &trip.CreatedAt, &trip.UpdatedAt)
}

func (r *tripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	const query = `
        UPDATE trips
        SET name=$1, start_time=$2, end_time=$3, longitude=$4, latitude=$5,
            price=$6, category=$7, guide_id=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		trip.Name,
		trip.StartTime,
		trip.EndTime,
		trip.Longitude,
		trip.Latitude,
		trip.Price,
		trip.Category,
		trip.GuideID,
		trip.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id=$1`

	var trip domain.Trip
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&trip.ID,
		&trip.Name,
		&trip.StartTime,
		&trip.EndTime,
		&trip.Longitude,
		&trip.Latitude,
		&trip.Price,
		&trip.Category,
		&trip.GuideID,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) List(ctx context.Context) ([]domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips ORDER BY id`
	return r.queryTrips(ctx, query)
}

func (r *tripRepository) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE category=$1 ORDER BY id`
	return r.queryTrips(ctx, query, category)
}

func (r *tripRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM trips WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tripRepository) queryTrips(ctx context.Context, query string, args ...any) ([]domain.Trip, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		var trip domain.Trip
		if err := rows.Scan(
			&trip.ID,
			&trip.Name,
			&trip.StartTime,
			&trip.EndTime,
			&trip.Longitude,
			&trip.Latitude,
			&trip.Price,
			&trip.Category,
			&trip.GuideID,
			&trip.CreatedAt,
			&trip.UpdatedAt,
		); err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}
