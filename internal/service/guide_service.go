package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/trip-service/internal/domain"
	"github.com/spec-kit/trip-service/internal/repository"
	apperrors "github.com/spec-kit/trip-service/pkg/util"
)

// GuideService owns guide CRUD.
type GuideService struct {
	guides repository.GuideRepository
}

// NewGuideService builds the service.
func NewGuideService(guides repository.GuideRepository) *GuideService {
	return &GuideService{guides: guides}
}

func (s *GuideService) Create(ctx context.Context, guide *domain.Guide) error {
	if err := s.guides.Create(ctx, guide); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func (s *GuideService) GetByID(ctx context.Context, id int64) (*domain.Guide, error) {
	guide, err := s.guides.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("guide")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return guide, nil
}

func (s *GuideService) List(ctx context.Context) ([]domain.Guide, error) {
	guides, err := s.guides.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return guides, nil
}

func (s *GuideService) Update(ctx context.Context, guide *domain.Guide) (*domain.Guide, error) {
	existing, err := s.GetByID(ctx, guide.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = guide.Name
	existing.Email = guide.Email
	existing.PhoneNumber = guide.PhoneNumber
	existing.YearsOfExperience = guide.YearsOfExperience

	if err := s.guides.Update(ctx, existing); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("guide")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return existing, nil
}

func (s *GuideService) Delete(ctx context.Context, id int64) error {
	if err := s.guides.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("guide")
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}
