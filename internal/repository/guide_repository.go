package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/trip-service/internal/domain"
)

// GuideRepository defines persistence access for guides.
type GuideRepository interface {
	Create(ctx context.Context, guide *domain.Guide) error
	Update(ctx context.Context, guide *domain.Guide) error
	GetByID(ctx context.Context, id int64) (*domain.Guide, error)
	List(ctx context.Context) ([]domain.Guide, error)
	Delete(ctx context.Context, id int64) error
}

type guideRepository struct {
	pool *pgxpool.Pool
}

// NewGuideRepository returns a Postgres-backed implementation.
func NewGuideRepository(pool *pgxpool.Pool) GuideRepository {
	return &guideRepository{pool: pool}
}

func (r *guideRepository) Create(ctx context.Context, guide *domain.Guide) error {
	const query = `
        INSERT INTO guides (name, email, phone_number, years_of_experience)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		guide.Name,
		guide.Email,
		guide.PhoneNumber,
		guide.YearsOfExperience,
	).Scan(&guide.ID, &guide.CreatedAt, &guide.UpdatedAt)
}

func (r *guideRepository) Update(ctx context.Context, guide *domain.Guide) error {
	const query = `
        UPDATE guides
        SET name=$1, email=$2, phone_number=$3, years_of_experience=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		guide.Name,
		guide.Email,
		guide.PhoneNumber,
		guide.YearsOfExperience,
		guide.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *guideRepository) GetByID(ctx context.Context, id int64) (*domain.Guide, error) {
	const query = `
        SELECT id, name, email, phone_number, years_of_experience, created_at, updated_at
        FROM guides WHERE id=$1`

	var guide domain.Guide
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&guide.ID,
		&guide.Name,
		&guide.Email,
		&guide.PhoneNumber,
		&guide.YearsOfExperience,
		&guide.CreatedAt,
		&guide.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &guide, nil
}

func (r *guideRepository) List(ctx context.Context) ([]domain.Guide, error) {
	const query = `
        SELECT id, name, email, phone_number, years_of_experience, created_at, updated_at
        FROM guides ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guides []domain.Guide
	for rows.Next() {
		var guide domain.Guide
		if err := rows.Scan(
			&guide.ID,
			&guide.Name,
			&guide.Email,
			&guide.PhoneNumber,
			&guide.YearsOfExperience,
			&guide.CreatedAt,
			&guide.UpdatedAt,
		); err != nil {
			return nil, err
		}
		guides = append(guides, guide)
	}
	return guides, rows.Err()
}

func (r *guideRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM guides WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
