package dto

import "github.com/spec-kit/trip-service/internal/domain"

// GuideRequest is the create/update payload for guides.
type GuideRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	PhoneNumber       string `json:"phoneNumber"`
	YearsOfExperience int    `json:"yearsOfExperience"`
}

// GuideResponse is the serialized guide.
type GuideResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	PhoneNumber       string `json:"phoneNumber"`
	YearsOfExperience int    `json:"yearsOfExperience"`
}

// FromGuide maps a domain guide to its response shape.
func FromGuide(guide *domain.Guide) GuideResponse {
	return GuideResponse{
		ID:                guide.ID,
		Name:              guide.Name,
		Email:             guide.Email,
		PhoneNumber:       guide.PhoneNumber,
		YearsOfExperience: guide.YearsOfExperience,
	}
}

// FromGuides maps a slice of domain guides.
func FromGuides(guides []domain.Guide) []GuideResponse {
	out := make([]GuideResponse, 0, len(guides))
	for i := range guides {
		out = append(out, FromGuide(&guides[i]))
	}
	return out
}
